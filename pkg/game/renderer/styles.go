package renderer

import (
	"github.com/gookit/color"
)

// Icons of the map lattice
const (
	IconAgent   = "@"
	IconObject  = "$"
	IconDoorway = "+"
	IconFloor   = "."
	IconVoid    = " "
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleCell
	StyleHeading
	StyleObject
	StyleDoorway
	StyleAgent
	StyleSubtle
)

var (
	colorCell    = color.Style{color.FgGray}
	colorHeading = color.Style{color.FgBlue, color.OpBold}
	colorObject  = color.Style{color.FgMagenta, color.OpBold}
	colorDoorway = color.Style{color.FgYellow, color.OpBold}
	colorAgent   = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	colorSubtle  = color.Style{color.FgGray, color.OpBold}
)

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	switch style {
	case StyleCell:
		return colorCell.Sprint(text)
	case StyleHeading:
		return colorHeading.Sprint(text)
	case StyleObject:
		return colorObject.Sprint(text)
	case StyleDoorway:
		return colorDoorway.Sprint(text)
	case StyleAgent:
		return colorAgent.Sprint(text)
	case StyleSubtle:
		return colorSubtle.Sprint(text)
	default:
		return text
	}
}
