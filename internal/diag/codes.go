package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexUnterminatedBlock  Code = 1004

	// ParseMiss: a declaration matched no known header and its scope
	// degraded to an untyped region.
	ParseMiss            Code = 2001
	ParseUnclosedBrace   Code = 2002
	ParseStrayBrace      Code = 2003
	ParseBadStatement    Code = 2004
	ParseMissingTypename Code = 2005

	RegDuplicateType    Code = 3001
	RegUnknownSuper     Code = 3002
	RegUnresolvedImport Code = 3003
	RegImportCycle      Code = 3004

	PrjConfigInvalid Code = 5001
	PrjHostTypes     Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "unknown diagnostic",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexUnterminatedChar:   "unterminated character literal",
	LexUnterminatedBlock:  "unterminated block comment",
	ParseMiss:             "declaration not recognized",
	ParseUnclosedBrace:    "unclosed brace",
	ParseStrayBrace:       "closing brace without opening",
	ParseBadStatement:     "statement could not be parsed",
	ParseMissingTypename:  "declaration without a name",
	RegDuplicateType:      "type declared more than once",
	RegUnknownSuper:       "unknown supertype",
	RegUnresolvedImport:   "import does not name a known module",
	RegImportCycle:        "import cycle",
	PrjConfigInvalid:      "invalid configuration",
	PrjHostTypes:          "invalid host type declaration",
}

// LexCode maps a lexer problem kind to its code.
func LexCode(kind string) Code {
	switch kind {
	case "UnknownChar":
		return LexUnknownChar
	case "UnterminatedString":
		return LexUnterminatedString
	case "UnterminatedChar":
		return LexUnterminatedChar
	case "UnterminatedComment":
		return LexUnterminatedBlock
	}
	return UnknownCode
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
