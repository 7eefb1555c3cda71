package grammar

import "unicode/utf16"

// spanFromUTF16 slices text at an engine-reported span. LanguageTool measures
// offsets and lengths in UTF-16 code units (Java string indexing); slicing Go
// strings by those numbers directly would misalign on any text containing
// multi-byte or astral characters. The span is converted to byte bounds by
// walking the text once, and the rune-based offset and length are returned
// alongside for the issue record.
//
// Out-of-range spans are clamped to the text rather than panicking; a
// malformed engine response degrades to a truncated context.
func spanFromUTF16(text string, off16, len16 int) (span string, runeOff, runeLen int) {
	if off16 < 0 {
		off16 = 0
	}
	if len16 < 0 {
		len16 = 0
	}
	end16 := off16 + len16

	var (
		u16       int // UTF-16 code units consumed
		runeIdx   int
		byteStart = -1
		byteEnd   = -1
		runeStart = 0
		runeEnd   = 0
	)

	for byteIdx, r := range text {
		if byteStart < 0 && u16 >= off16 {
			byteStart = byteIdx
			runeStart = runeIdx
		}
		if byteEnd < 0 && u16 >= end16 {
			byteEnd = byteIdx
			runeEnd = runeIdx
		}
		u16 += utf16.RuneLen(r)
		runeIdx++
	}

	// Spans reaching the end of the text.
	if byteStart < 0 {
		if u16 >= off16 {
			byteStart = len(text)
			runeStart = runeIdx
		} else {
			return "", 0, 0
		}
	}
	if byteEnd < 0 {
		byteEnd = len(text)
		runeEnd = runeIdx
	}

	return text[byteStart:byteEnd], runeStart, runeEnd - runeStart
}
