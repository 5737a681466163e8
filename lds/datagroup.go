package lds

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tag identifies one Data Group (or COM/SOD) by its outer BER
// application tag.
type Tag int

const (
	TagCOM Tag = iota
	TagDG1
	TagDG2
	TagDG3
	TagDG4
	TagDG5
	TagDG6
	TagDG7
	TagDG8
	TagDG9
	TagDG10
	TagDG11
	TagDG12
	TagDG13
	TagDG14
	TagDG15
	TagDG16
	TagSOD
)

// berTagByDG and efIDByDG are two views of the same table: the BER
// application tag that opens the file's content, and the 2-byte
// short-EF identifier SELECT uses to address it.
var berTagByDG = map[Tag]byte{
	TagCOM: 0x60, TagDG1: 0x61, TagDG2: 0x75, TagDG3: 0x63, TagDG4: 0x76,
	TagDG5: 0x65, TagDG6: 0x66, TagDG7: 0x67, TagDG8: 0x68, TagDG9: 0x69,
	TagDG10: 0x6A, TagDG11: 0x6B, TagDG12: 0x6C, TagDG13: 0x6D, TagDG14: 0x6E,
	TagDG15: 0x6F, TagDG16: 0x70, TagSOD: 0x77,
}

var efIDByDG = map[Tag][2]byte{
	TagCOM: {0x01, 0x1E}, TagDG1: {0x01, 0x01}, TagDG2: {0x01, 0x02}, TagDG3: {0x01, 0x03},
	TagDG4: {0x01, 0x04}, TagDG5: {0x01, 0x05}, TagDG6: {0x01, 0x06}, TagDG7: {0x01, 0x07},
	TagDG8: {0x01, 0x08}, TagDG9: {0x01, 0x09}, TagDG10: {0x01, 0x0A}, TagDG11: {0x01, 0x0B},
	TagDG12: {0x01, 0x0C}, TagDG13: {0x01, 0x0D}, TagDG14: {0x01, 0x0E}, TagDG15: {0x01, 0x0F},
	TagDG16: {0x01, 0x10}, TagSOD: {0x01, 0x1D},
}

// String renders a Tag as its ICAO name, for logging.
func (t Tag) String() string {
	if t == TagCOM {
		return "COM"
	}
	if t == TagSOD {
		return "SOD"
	}
	if t >= TagDG1 && t <= TagDG16 {
		return fmt.Sprintf("DG%d", int(t))
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// EFCardAccessID is the short-EF identifier for EF.CardAccess, which
// lives outside the eMRTD application and must be read via
// SelectMasterFile before selecting any DG.
var EFCardAccessID = [2]byte{0x01, 0x1C}

// EFIDByTag returns the short-EF identifier used to SELECT a DG.
func EFIDByTag(tag Tag) ([2]byte, bool) {
	id, ok := efIDByDG[tag]
	return id, ok
}

// TagByBERTag resolves an outer BER application tag byte (as found
// at the start of a read file's content) to the DG it identifies.
func TagByBERTag(ber byte) (Tag, bool) {
	for tag, b := range berTagByDG {
		if b == ber {
			return tag, true
		}
	}
	return 0, false
}

// DataGroup is the tagged-variant model the orchestrator accumulates:
// every DG it reads, keyed by Tag, holding the raw BER bytes plus a
// decoded view for the groups this package understands. DGs this
// package doesn't decode (DG1-13, DG15-16) are carried as opaque
// bytes for an out-of-scope layer to parse.
type DataGroup struct {
	Tag  Tag
	Raw  []byte
	COM  *COM
	DG14 *DG14
	SOD  *SOD
}

// ErrUnexpectedBERTag is returned when a file's leading application
// tag does not match the DG it was read to decode.
var ErrUnexpectedBERTag = errors.New("lds: unexpected top-level BER tag for this Data Group")
