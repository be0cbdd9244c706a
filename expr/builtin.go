// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package expr

import (
	"strings"

	"github.com/SnellerInc/traverse/value"
)

type builtin struct {
	args   int
	typeof func(args []value.Type) (value.Type, bool)
	eval   func(args []value.Datum) (value.Datum, bool)
}

func lower(fn string) string { return strings.ToLower(fn) }

// builtins are the functions that
// may appear in a Call; all of them are
// pure, so calls with evaluable arguments
// can be folded.
var builtins = map[string]*builtin{
	"size": {
		args: 1,
		typeof: func(args []value.Type) (value.Type, bool) {
			switch args[0] {
			case value.ListType, value.TableType, value.StringType:
				return value.IntType, true
			case value.NullType:
				return value.NullType, true
			}
			return 0, false
		},
		eval: func(args []value.Datum) (value.Datum, bool) {
			if _, ok := args[0].(value.Null); ok {
				return value.Null{}, true
			}
			n, ok := value.Size(args[0])
			return value.Int(n), ok
		},
	},
	"abs": {
		args: 1,
		typeof: func(args []value.Type) (value.Type, bool) {
			return args[0], numeric(args[0])
		},
		eval: func(args []value.Datum) (value.Datum, bool) {
			switch d := args[0].(type) {
			case value.Int:
				if d < 0 {
					return -d, true
				}
				return d, true
			case value.Float:
				if d < 0 {
					return -d, true
				}
				return d, true
			}
			return nil, false
		},
	},
	"lower": stringfn(strings.ToLower),
	"upper": stringfn(strings.ToUpper),
}

func stringfn(fn func(string) string) *builtin {
	return &builtin{
		args: 1,
		typeof: func(args []value.Type) (value.Type, bool) {
			return value.StringType, args[0] == value.StringType
		},
		eval: func(args []value.Datum) (value.Datum, bool) {
			s, ok := args[0].(value.String)
			if !ok {
				return nil, false
			}
			return value.String(fn(string(s))), true
		},
	}
}
