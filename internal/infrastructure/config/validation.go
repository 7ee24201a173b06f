package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig checks struct tags plus the cross-section rules tags cannot express
func ValidateConfig(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateEconomy, EconomyConfig{})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s: failed %q (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(problems, "\n  "))
}

// validateEconomy rejects economies the daemon could never serve: a
// continent wider than the int coordinate space settlements are stored in,
// or a build duration under one second, which the ledgers cannot resolve.
func validateEconomy(sl validator.StructLevel) {
	econ := sl.Current().Interface().(EconomyConfig)

	if econ.BuildDuration > 0 && econ.BuildDuration.Seconds() < 1 {
		sl.ReportError(econ.BuildDuration, "BuildDuration", "BuildDuration", "min_one_second", "")
	}
	if econ.Continent.Width > 0 && econ.Continent.Height > 0 &&
		econ.Continent.Width > maxContinentCells/econ.Continent.Height {
		sl.ReportError(econ.Continent, "Continent", "Continent", "max_cells", fmt.Sprint(maxContinentCells))
	}
}

const maxContinentCells = 1 << 20
