//
// parse.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reArr   = regexp.MustCompilePOSIX(`^\[([[:digit:]]+)\](.+)$`)
	reSized = regexp.MustCompilePOSIX(`^u([[:digit:]]+)$`)
)

// Parse parses a type definition and returns its type information.
func Parse(val string) (info Info, err error) {
	switch val {
	case "b", "bit", "bool":
		return Bit, nil
	case "byte":
		return U8, nil
	}

	m := reSized.FindStringSubmatch(val)
	if m != nil {
		var bits int64
		bits, err = strconv.ParseInt(m[1], 10, 32)
		if err != nil {
			return
		}
		switch bits {
		case 8:
			return U8, nil
		case 16:
			return U16, nil
		case 32:
			return U32, nil
		case 64:
			return U64, nil
		case 128:
			return U128, nil
		default:
			return info, fmt.Errorf("types.Parse: invalid width: %s", val)
		}
	}

	m = reArr.FindStringSubmatch(val)
	if m == nil {
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	var count int64
	count, err = strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return
	}
	var el Info
	el, err = Parse(m[2])
	if err != nil {
		return
	}
	return Array(el, int(count)), nil
}
