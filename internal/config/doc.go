// Package config loads the community-access server settings.
//
// Values come from four layers. A non-zero value in a higher layer wins:
//  1. Environment variables (REDIS_URL and SECRET_KEY are still honoured
//     when their prefixed names are unset)
//  2. Command-line flags
//  3. A JSON file named by CONFIG or -c
//  4. Built-in defaults
//
// The merged result is validated before [GetStructuredConfig] returns it:
// a database DSN and a session signing key are mandatory.
package config
