package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProfileID is the opaque, stable identifier of a profile.
type ProfileID string

func (id ProfileID) String() string { return string(id) }

// Gender is a value of the closed gender set used for pairing.
type Gender string

const (
	GenderMale   Gender = "erkek"
	GenderFemale Gender = "kadin"
)

var (
	// ErrUnknownGender is returned for values outside the closed gender set.
	ErrUnknownGender = errors.New("unknown gender")
	// ErrIncompleteProfile is returned when a field needed for pairing is missing.
	ErrIncompleteProfile = errors.New("incomplete profile")
)

// ParseGender normalises raw input into the closed set.
// English names and the dotted "kadın" spelling are accepted as aliases.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "erkek", "male":
		return GenderMale, nil
	case "kadin", "kadın", "female":
		return GenderFemale, nil
	}
	return "", ErrUnknownGender
}

// Valid reports whether g belongs to the closed set.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Opposite returns the gender a viewer of gender g is paired with.
// There is no pass-through for unknown values: they fail fast.
func (g Gender) Opposite() (Gender, error) {
	switch g {
	case GenderMale:
		return GenderFemale, nil
	case GenderFemale:
		return GenderMale, nil
	}
	return "", ErrUnknownGender
}

// Profile is a user's matchable profile document.
type Profile struct {
	ID        ProfileID
	Name      string
	Gender    Gender
	OS        string
	BirthDate time.Time
	// Bio and Image are optional; empty means unset.
	Bio   string
	Image string
}

// AgeOn returns the number of full years elapsed between BirthDate and now.
// Unlike plain calendar-year subtraction, a birthday later in the year has not
// been counted yet. A zero BirthDate yields 0.
func (p Profile) AgeOn(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	born := p.BirthDate.UTC()
	now = now.UTC()

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Validate checks the fields the engine relies on for pairing.
func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrIncompleteProfile)
	}
	if !p.Gender.Valid() {
		return ErrUnknownGender
	}
	if strings.TrimSpace(p.OS) == "" {
		return fmt.Errorf("%w: os is required", ErrIncompleteProfile)
	}
	return nil
}

// KnownOperatingSystems is the catalogue offered during onboarding.
// Matching treats OS as a free-form string; this list only seeds demo data.
var KnownOperatingSystems = []string{
	"Windows 11", "Windows 10", "Windows 8.1", "Windows 7",
	"Ubuntu", "Fedora", "Arch Linux", "Debian", "Manjaro", "Linux Mint",
	"EndeavourOS", "Pop!_OS", "Zorin OS", "elementary OS", "Kali Linux",
	"CentOS", "openSUSE", "Garuda Linux", "Solus", "Gentoo", "Void Linux",
	"NixOS", "Pardus", "Red Hat Enterprise Linux",
}
