package institutions

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	modularCodePattern = regexp.MustCompile(`^[0-9]{7}$`)
	hexColorPattern    = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Validate checks an institution before submission. Failures never reach the
// network; the caller reports them next to the offending field.
func (i Institution) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !modularCodePattern.MatchString(i.ModularCode) {
		return fmt.Errorf("modular code must be exactly 7 digits")
	}
	if i.Level != "" {
		switch i.Level {
		case LevelInitial, LevelPrimary, LevelSecondary:
		default:
			return fmt.Errorf("level must be one of INITIAL, PRIMARY, SECONDARY")
		}
	}
	if i.Theme != nil {
		if err := i.Theme.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks theme settings.
func (t Theme) Validate() error {
	if t.PrimaryColor != "" && !hexColorPattern.MatchString(t.PrimaryColor) {
		return fmt.Errorf("primary color must be a #rrggbb value")
	}
	if t.SecondaryColor != "" && !hexColorPattern.MatchString(t.SecondaryColor) {
		return fmt.Errorf("secondary color must be a #rrggbb value")
	}
	if t.LogoPosition != "" && t.LogoPosition != "left" && t.LogoPosition != "center" {
		return fmt.Errorf("logo position must be 'left' or 'center'")
	}
	return nil
}
