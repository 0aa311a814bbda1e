// Package templates manages the library of saved description templates.
package templates
