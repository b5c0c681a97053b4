// Package ingest normalizes document-store JSON exports into models.
//
// Exports come from several generations of the mobile client and disagree on
// field names (anxiety vs anxietyLevel, sobrietyDate vs sobrietyStartDate)
// and on how dates are written. Everything is resolved here so the engine
// only ever sees the canonical models.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/recovr/internal/constants"
	"github.com/julianstephens/recovr/internal/dates"
	"github.com/julianstephens/recovr/internal/models"
)

// ErrInvalidDocument is returned when the export is not a JSON object of the
// expected shape.
var ErrInvalidDocument = errors.New("invalid export document")

// Field-name variants, canonical name first.
var (
	moodKeys         = []string{"mood", "moodLevel"}
	cravingKeys      = []string{"craving", "cravingLevel"}
	anxietyKeys      = []string{"anxiety", "anxietyLevel"}
	sleepKeys        = []string{"sleep", "sleepQuality"}
	overallDayKeys   = []string{"overallDay", "dayRating"}
	sobrietyDateKeys = []string{"sobrietyStartDate", "sobrietyDate"}
	checkInsKeys     = []string{"checkIns", "checkins", "checkInHistory"}
	morningKeys      = []string{"morningData", "morning"}
	eveningKeys      = []string{"eveningData", "evening", "reflection"}

	morningRatingKeys = concat(moodKeys, cravingKeys, anxietyKeys, sleepKeys)
)

// Warning reports a value that was dropped or corrected during ingestion.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Path + ": " + w.Message
}

// Export is a normalized export. Profile is nil when the document had none.
type Export struct {
	Profile  *models.RecoveryProfile
	CheckIns []models.CheckIn
}

// Decoder reads exports. Timestamps are converted to calendar dates in Location.
type Decoder struct {
	Location *time.Location
}

// ReadExport decodes an export using the local timezone.
func ReadExport(r io.Reader) (Export, []Warning, error) {
	return Decoder{Location: time.Local}.Read(r)
}

type document map[string]json.RawMessage

// Read decodes and normalizes one export document.
func (d Decoder) Read(r io.Reader) (Export, []Warning, error) {
	if d.Location == nil {
		d.Location = time.Local
	}

	var root document
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return Export{}, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root == nil {
		return Export{}, nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidDocument)
	}

	n := &normalizer{loc: d.Location}
	var out Export

	if raw, ok := root["profile"]; ok {
		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return Export{}, nil, fmt.Errorf("%w: profile: %v", ErrInvalidDocument, err)
		}
		p := n.profile(doc)
		out.Profile = &p
	}

	if raw, key, ok := lookup(root, checkInsKeys); ok {
		var docs []document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return Export{}, nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, key, err)
		}
		out.CheckIns = n.checkIns(key, docs)
	}

	if out.Profile == nil && out.CheckIns == nil {
		return Export{}, nil, fmt.Errorf("%w: no profile or check-ins found", ErrInvalidDocument)
	}
	return out, n.warnings, nil
}

type normalizer struct {
	loc      *time.Location
	warnings []Warning
}

func (n *normalizer) warn(path, format string, args ...any) {
	n.warnings = append(n.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (n *normalizer) profile(doc document) models.RecoveryProfile {
	p := models.RecoveryProfile{
		FirstName:       n.str(doc, "profile.firstName", "firstName"),
		LastName:        n.str(doc, "profile.lastName", "lastName"),
		Phone:           n.str(doc, "profile.phone", "phone", "phoneNumber"),
		AddressCity:     n.str(doc, "profile.city", "city", "addressCity"),
		ProfileImageURL: n.str(doc, "profile.profileImage", "profileImage", "profileImageUrl", "photoURL"),
		Substance:       n.str(doc, "profile.substance", "substance", "addictionType"),
	}
	p.ActiveSavingsGoalID = n.str(doc, "profile.activeSavingsGoal", "activeSavingsGoal", "activeSavingsGoalId")

	if raw, key, ok := lookup(doc, []string{"dateOfBirth", "dob", "birthDate"}); ok {
		if day, ok := n.date("profile."+key, raw); ok {
			p.DateOfBirth = day
		}
	}
	if raw, key, ok := lookup(doc, sobrietyDateKeys); ok {
		if day, ok := n.date("profile."+key, raw); ok {
			p.SobrietyStartDate = day
		}
	}

	if raw, key, ok := lookup(doc, []string{"dailyCost", "dailySpend"}); ok {
		if amount, ok := n.money("profile."+key, raw); ok {
			if amount.IsNegative() {
				n.warn("profile."+key, "negative daily cost %s replaced with 0", amount)
				amount = decimal.Zero
			}
			p.DailyCost = amount
		}
	}
	if raw, key, ok := lookup(doc, []string{"actualMoneySetAside", "moneySetAside"}); ok {
		if amount, ok := n.money("profile."+key, raw); ok {
			p.ActualMoneySetAside = &amount
		}
	}

	if raw, ok := doc["customSavingsGoals"]; ok {
		var goals []document
		if err := json.Unmarshal(raw, &goals); err != nil {
			n.warn("profile.customSavingsGoals", "not a list: %v", err)
		}
		for i, g := range goals {
			if goal, ok := n.goal(fmt.Sprintf("profile.customSavingsGoals[%d]", i), g); ok {
				p.CustomSavingsGoals = append(p.CustomSavingsGoals, goal)
			}
		}
	}

	if raw, ok := doc["emergencyContacts"]; ok {
		var contacts []document
		if err := json.Unmarshal(raw, &contacts); err != nil {
			n.warn("profile.emergencyContacts", "not a list: %v", err)
		}
		for i, c := range contacts {
			path := fmt.Sprintf("profile.emergencyContacts[%d]", i)
			contact := models.EmergencyContact{
				ID:           n.str(c, path+".id", "id"),
				Name:         n.str(c, path+".name", "name"),
				Phone:        n.str(c, path+".phone", "phone", "phoneNumber"),
				Relationship: n.str(c, path+".relationship", "relationship"),
			}
			if contact.Name == "" || contact.Phone == "" {
				n.warn(path, "contact without name or phone skipped")
				continue
			}
			if contact.ID == "" {
				contact.ID = uuid.New().String()
			}
			p.EmergencyContacts = append(p.EmergencyContacts, contact)
		}
	}

	return p
}

func (n *normalizer) goal(path string, doc document) (models.SavingsGoal, bool) {
	g := models.SavingsGoal{
		ID:   n.str(doc, path+".id", "id"),
		Name: n.str(doc, path+".name", "name", "title"),
		Icon: n.str(doc, path+".icon", "icon", "emoji"),
	}
	raw, key, ok := lookup(doc, []string{"targetAmount", "amount", "target"})
	if !ok {
		n.warn(path, "goal without target amount skipped")
		return models.SavingsGoal{}, false
	}
	amount, ok := n.money(path+"."+key, raw)
	if !ok {
		return models.SavingsGoal{}, false
	}
	if !amount.IsPositive() {
		n.warn(path, "goal with non-positive target %s skipped", amount)
		return models.SavingsGoal{}, false
	}
	if g.Name == "" {
		n.warn(path, "goal without name skipped")
		return models.SavingsGoal{}, false
	}
	g.TargetAmount = amount
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return g, true
}

// checkIns normalizes every record and merges records that share a date.
func (n *normalizer) checkIns(key string, docs []document) []models.CheckIn {
	byDate := make(map[string]models.CheckIn, len(docs))
	for i, doc := range docs {
		path := fmt.Sprintf("%s[%d]", key, i)
		c, ok := n.checkIn(path, doc)
		if !ok {
			continue
		}
		if prev, dup := byDate[c.Date]; dup {
			n.warn(path, "duplicate record for %s merged", c.Date)
			c = prev.Merge(c)
		}
		byDate[c.Date] = c
	}

	out := make([]models.CheckIn, 0, len(byDate))
	for _, c := range byDate {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (n *normalizer) checkIn(path string, doc document) (models.CheckIn, bool) {
	raw, key, ok := lookup(doc, []string{"date", "dateKey", "createdAt", "timestamp"})
	if !ok {
		n.warn(path, "record without date skipped")
		return models.CheckIn{}, false
	}
	day, ok := n.date(path+"."+key, raw)
	if !ok {
		return models.CheckIn{}, false
	}

	c := models.CheckIn{
		ID:   n.str(doc, path+".id", "id"),
		Date: day,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	// Legacy records put the morning ratings at the top level.
	if raw, key, ok := lookup(doc, morningKeys); ok {
		var morningDoc document
		if err := json.Unmarshal(raw, &morningDoc); err != nil || morningDoc == nil {
			n.warn(path+"."+key, "morning data is not an object")
		} else {
			c.Morning = n.morning(path+"."+key, morningDoc)
		}
	} else if _, _, ok := lookup(doc, morningRatingKeys); ok {
		c.Morning = n.morning(path, doc)
	}

	if raw, key, ok := lookup(doc, eveningKeys); ok {
		var eveningDoc document
		if err := json.Unmarshal(raw, &eveningDoc); err != nil {
			n.warn(path+"."+key, "evening data is not an object")
		} else {
			c.Evening = n.evening(path+"."+key, eveningDoc)
		}
	} else if _, _, ok := lookup(doc, overallDayKeys); ok {
		c.Evening = n.evening(path, doc)
	}

	if c.Morning == nil && c.Evening == nil {
		n.warn(path, "record for %s has no morning or evening data", day)
	}
	return c, true
}

func (n *normalizer) morning(path string, doc document) *models.MorningData {
	return &models.MorningData{
		Mood:    n.rating(path, doc, moodKeys),
		Craving: n.rating(path, doc, cravingKeys),
		Anxiety: n.rating(path, doc, anxietyKeys),
		Sleep:   n.rating(path, doc, sleepKeys),
	}
}

func (n *normalizer) evening(path string, doc document) *models.EveningData {
	return &models.EveningData{
		OverallDay:   n.rating(path, doc, overallDayKeys),
		Challenges:   n.str(doc, path+".challenges", "challenges"),
		Gratitude:    n.str(doc, path+".gratitude", "gratitude"),
		TomorrowGoal: n.str(doc, path+".tomorrowGoal", "tomorrowGoal", "goalForTomorrow"),
	}
}

// rating reads a 0-10 value. Missing, null and out-of-range values yield nil.
func (n *normalizer) rating(path string, doc document, keys []string) *int {
	raw, key, ok := lookup(doc, keys)
	if !ok || isNull(raw) {
		return nil
	}
	field := path + "." + key

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			n.warn(field, "not a number")
			return nil
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			n.warn(field, "not a number: %q", s)
			return nil
		}
	}
	if f != math.Trunc(f) {
		n.warn(field, "fractional rating %v rounded", f)
		f = math.Round(f)
	}
	v := int(f)
	if v < constants.MinMetricValue || v > constants.MaxMetricValue {
		n.warn(field, "value %d outside %d-%d dropped", v, constants.MinMetricValue, constants.MaxMetricValue)
		return nil
	}
	return &v
}

// date resolves a YYYY-MM-DD string, an RFC3339 timestamp or a
// {seconds, nanoseconds} document-store timestamp to a date key.
func (n *normalizer) date(path string, raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if dates.Valid(s) {
			return s, true
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return dates.Key(t.In(n.loc)), true
		}
		n.warn(path, "unrecognized date %q", s)
		return "", false
	}

	var ts struct {
		Seconds     *int64 `json:"seconds"`
		Nanoseconds int64  `json:"nanoseconds"`
		LegacySecs  *int64 `json:"_seconds"`
	}
	if err := json.Unmarshal(raw, &ts); err == nil {
		secs := ts.Seconds
		if secs == nil {
			secs = ts.LegacySecs
		}
		if secs != nil {
			return dates.Key(time.Unix(*secs, ts.Nanoseconds).In(n.loc)), true
		}
	}

	n.warn(path, "unrecognized date value %s", string(raw))
	return "", false
}

func (n *normalizer) money(path string, raw json.RawMessage) (decimal.Decimal, bool) {
	if isNull(raw) {
		return decimal.Zero, false
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	text = strings.TrimPrefix(strings.TrimSpace(text), "$")
	d, err := decimal.NewFromString(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		n.warn(path, "not an amount: %s", string(raw))
		return decimal.Zero, false
	}
	return d, true
}

// str returns the first present key as a trimmed string. Non-string values
// are reported and ignored.
func (n *normalizer) str(doc document, path string, keys ...string) string {
	raw, _, ok := lookup(doc, keys)
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		n.warn(path, "expected a string")
		return ""
	}
	return strings.TrimSpace(s)
}

// lookup returns the first key of keys present in doc.
func lookup(doc document, keys []string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		if raw, ok := doc[k]; ok {
			return raw, k, true
		}
	}
	return nil, "", false
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
