package metrics

import "fmt"

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// validateMetricName checks name against [a-zA-Z_:][a-zA-Z0-9_:]* .
func validateMetricName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: metric name cannot be empty", ErrConfiguration)
	}
	if !isAlpha(name[0]) && name[0] != '_' && name[0] != ':' {
		return fmt.Errorf("%w: metric name %q must start with [a-zA-Z_:]", ErrConfiguration, name)
	}
	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !isAlpha(ch) && !isDigit(ch) && ch != '_' && ch != ':' {
			return fmt.Errorf("%w: metric name %q contains invalid char %q", ErrConfiguration, name, ch)
		}
	}
	return nil
}

// validateLabelName checks name against [a-zA-Z_][a-zA-Z0-9_]* .
// Names starting with __ are reserved for internal use.
func validateLabelName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: label name cannot be empty", ErrConfiguration)
	}
	if len(name) >= 2 && name[0] == '_' && name[1] == '_' {
		return fmt.Errorf("%w: label name %q starts with reserved prefix __", ErrConfiguration, name)
	}
	if !isAlpha(name[0]) && name[0] != '_' {
		return fmt.Errorf("%w: label name %q must start with [a-zA-Z_]", ErrConfiguration, name)
	}
	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !isAlpha(ch) && !isDigit(ch) && ch != '_' {
			return fmt.Errorf("%w: label name %q contains invalid char %q", ErrConfiguration, name, ch)
		}
	}
	return nil
}

// validateSchema checks a family's metric name and label-name schema.
// It runs once at family construction, never per resolve.
func validateSchema(name string, labelNames []string) error {
	if err := validateMetricName(name); err != nil {
		return err
	}
	for _, labelName := range labelNames {
		if err := validateLabelName(labelName); err != nil {
			return fmt.Errorf("cannot use label %q in metric %q: %w", labelName, name, err)
		}
	}
	return nil
}
