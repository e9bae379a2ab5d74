// Package openapi imports field validation rules from OpenAPI component
// schemas. Documents are loaded from the filesystem or an fs.FS and parsed with
// kin-openapi; callers only see validation.Rule values.
package openapi
