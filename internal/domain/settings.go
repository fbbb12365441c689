package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Content settings shown across the marketing site.
const (
	SettingYearsExperience     = "years_experience"
	SettingMachinesServiced    = "machines_serviced"
	SettingEmergencySupport    = "emergency_support"
	SettingFooterPhone         = "footer_phone"
	SettingFooterEmail         = "footer_email"
	SettingFooterAddress       = "footer_address"
	SettingFooterHoursWeekday  = "footer_hours_weekday"
	SettingFooterHoursSaturday = "footer_hours_saturday"
	SettingFooterHoursSunday   = "footer_hours_sunday"
	SettingSocialFacebook      = "social_facebook"
	SettingSocialInstagram     = "social_instagram"
)

var requiredSettings = []string{
	SettingYearsExperience,
	SettingMachinesServiced,
	SettingEmergencySupport,
}

var optionalSettings = []string{
	SettingFooterPhone,
	SettingFooterEmail,
	SettingFooterAddress,
	SettingFooterHoursWeekday,
	SettingFooterHoursSaturday,
	SettingFooterHoursSunday,
	SettingSocialFacebook,
	SettingSocialInstagram,
}

// Settings is a flat key/value view of the content settings.
type Settings map[string]string

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Validate rejects unknown keys and blank required keys.
func (s Settings) Validate() error {
	var errs []error
	for _, k := range requiredSettings {
		if strings.TrimSpace(s[k]) == "" {
			errs = append(errs, fmt.Errorf("%s is required", k))
		}
	}
	for k := range s {
		if !IsKnownSetting(k) {
			errs = append(errs, fmt.Errorf("unknown setting %q", k))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// IsKnownSetting reports whether key is one of the supported settings.
func IsKnownSetting(key string) bool {
	return slices.Contains(requiredSettings, key) || slices.Contains(optionalSettings, key)
}

// DefaultSettings seeds a fresh database.
func DefaultSettings() Settings {
	return Settings{
		SettingYearsExperience:     "15+",
		SettingMachinesServiced:    "500+",
		SettingEmergencySupport:    "24/7",
		SettingFooterPhone:         "",
		SettingFooterEmail:         "",
		SettingFooterAddress:       "",
		SettingFooterHoursWeekday:  "Mon-Fri: 8:00 AM - 6:00 PM",
		SettingFooterHoursSaturday: "Sat: 9:00 AM - 2:00 PM",
		SettingFooterHoursSunday:   "Sun: Emergency only",
		SettingSocialFacebook:      "",
		SettingSocialInstagram:     "",
	}
}
