// Package flags holds cli flag types shared by the dAPI server binaries.
package flags

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// EnumValue describes a string flag that only accepts one of Enum, such as
// the signature scheme of an airnode key. The chosen value is written to
// Destination, which starts out holding Value.
type EnumValue struct {
	Name        string
	Usage       string
	Destination *string
	Enum        []string
	Value       string
}

// Set accepts value only if it is one of the allowed values.
func (e *EnumValue) Set(value string) error {
	for _, allowed := range e.Enum {
		if value == allowed {
			*e.Destination = value
			return nil
		}
	}
	return errors.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
}

// String returns the chosen value, falling back to the default.
func (e *EnumValue) String() string {
	if e.Destination != nil && *e.Destination != "" {
		return *e.Destination
	}
	return e.Value
}

// GenericFlag returns a cli flag backed by a copy of e, with Destination
// reset to the default.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	value := &e
	return &cli.GenericFlag{
		Name:        e.Name,
		Usage:       e.Usage + " (" + strings.Join(e.Enum, ", ") + ")",
		Destination: value,
		Value:       value,
	}
}
