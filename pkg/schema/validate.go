package schema

// Schema is a map of field names to their expected types.
// Example: {"due": String(), "priority": Optional(Int()), "tags": Slice(String())}
type Schema map[string]Type

// Validate checks if data conforms to the schema. Fields are required unless
// their type is Optional. Returns an error with all failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			if IsOptional(fieldType) {
				continue
			}
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
