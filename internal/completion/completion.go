// Package completion scores how much of a recovery profile is filled in.
package completion

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/recovr/internal/models"
)

// Field names one required profile field.
type Field string

const (
	FieldFirstName        Field = "first_name"
	FieldLastName         Field = "last_name"
	FieldPhone            Field = "phone"
	FieldSobrietyDate     Field = "sobriety_date"
	FieldSubstance        Field = "substance"
	FieldDailyCost        Field = "daily_cost"
	FieldEmergencyContact Field = "emergency_contact"
	FieldAddressCity      Field = "address_city"
	FieldProfileImage     Field = "profile_image"
	FieldDateOfBirth      Field = "date_of_birth"
)

// DefaultFields is the standard required field set.
var DefaultFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldSobrietyDate,
	FieldSubstance,
	FieldDailyCost,
	FieldEmergencyContact,
	FieldAddressCity,
	FieldProfileImage,
	FieldDateOfBirth,
}

var checks = map[Field]func(models.RecoveryProfile) bool{
	FieldFirstName:    func(p models.RecoveryProfile) bool { return filled(p.FirstName) },
	FieldLastName:     func(p models.RecoveryProfile) bool { return filled(p.LastName) },
	FieldPhone:        func(p models.RecoveryProfile) bool { return filled(p.Phone) },
	FieldSobrietyDate: func(p models.RecoveryProfile) bool { return filled(p.SobrietyStartDate) },
	FieldSubstance:    func(p models.RecoveryProfile) bool { return filled(p.Substance) },
	FieldDailyCost:    func(p models.RecoveryProfile) bool { return p.DailyCost.IsPositive() },
	FieldEmergencyContact: func(p models.RecoveryProfile) bool {
		return len(p.EmergencyContacts) > 0
	},
	FieldAddressCity:  func(p models.RecoveryProfile) bool { return filled(p.AddressCity) },
	FieldProfileImage: func(p models.RecoveryProfile) bool { return filled(p.ProfileImageURL) },
	FieldDateOfBirth:  func(p models.RecoveryProfile) bool { return filled(p.DateOfBirth) },
}

// ParseField resolves a field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := checks[f]; !ok {
		return "", fmt.Errorf("unknown profile field %q", s)
	}
	return f, nil
}

// Result is a completion score.
type Result struct {
	Percent   int     `json:"percent"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Missing   []Field `json:"missing"`
}

// Score counts how many of the required fields are populated. Duplicate and
// unknown fields are ignored. An empty set scores 100.
func Score(p models.RecoveryProfile, required []Field) Result {
	res := Result{Missing: []Field{}}
	seen := make(map[Field]bool, len(required))
	for _, f := range required {
		check, ok := checks[f]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		res.Total++
		if check(p) {
			res.Completed++
		} else {
			res.Missing = append(res.Missing, f)
		}
	}

	if res.Total == 0 {
		res.Percent = 100
		return res
	}
	res.Percent = int(math.Round(100 * float64(res.Completed) / float64(res.Total)))
	return res
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
