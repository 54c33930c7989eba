// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package confbind binds structured configuration documents to typed
// Go values using an explicit, ordered field schema.
//
// A schema declares the configurable fields of a value: the serialized
// key each field is read from, an optional default, whether it is
// required, and placeholder text for scaffolding new config files.
//
//	s, err := schema.New(
//	    schema.String("username", schema.Required()),
//	    schema.String("password", schema.Required()),
//	    schema.Bool("isAdmin", schema.Default(false)),
//	)
//
// A Manager wraps the schema with format codecs and file access:
//
//	type Credentials struct {
//	    Username string `config:"username"`
//	    Password string `config:"password"`
//	    IsAdmin  bool   `config:"isAdmin"`
//	}
//
//	m := confbind.New(s)
//
//	var creds Credentials
//	err = m.ReadFile(ctx, "credentials.yaml", &creds)
//
// # Validation
//
// Binding scans the whole schema before failing: a document missing
// several required fields produces a single [ValidationError] listing
// every absent key, not just the first one encountered.
//
// # Formats
//
// JSON, JSONC (comments and trailing commas) and YAML are supported,
// chosen by file extension or an explicit format token. Serialized
// documents preserve schema field order.
//
// # Defaults
//
// WriteDefaults scaffolds a config file a user can hand edit: fields
// with defaults are written as-is, required fields without defaults
// get their placeholder text or a generated "REQUIRED FIELD (<type>)"
// marker, and everything else is omitted.
package confbind
