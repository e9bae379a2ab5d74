// Package questionnaire loads the static configuration of intake
// questionnaires: ordered sections, fields, validation rules and conditional
// bindings. Definitions come from JSON or YAML documents, and a default
// obstetric intake questionnaire is embedded in the package.
package questionnaire
