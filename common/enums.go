// Package common keeps enumerations shared by configuration and command
// line processing.
package common

//go:generate go tool go-enum --marshal --names

// Table of contents document format.
// ENUM(ncx, xhtml)
type Format int

// Ext returns conventional file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatNcx:
		return ".ncx"
	case FormatXhtml:
		return ".xhtml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
