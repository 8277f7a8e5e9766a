// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		style QuoteStyle
		want  string
	}{
		{`'abc'`, QuoteDouble, `"abc"`},
		{`"abc"`, QuoteDouble, `"abc"`},
		{`'it\'s'`, QuoteDouble, `"it's"`},
		{`'say "hi"'`, QuoteDouble, `'say "hi"'`},
		{`'a\nb'`, QuoteDouble, `"a\nb"`},
		{`"abc"`, QuoteSingle, `'abc'`},
		{`"it's"`, QuoteSingle, `"it's"`},
		{`"a\"b"`, QuoteSingle, `'a"b'`},
		{`"a'b\"c\"d"`, QuoteSingle, `'a\'b"c"d'`},
		{`'`, QuoteDouble, `'`},
		{`abc`, QuoteDouble, `abc`},
	}

	for _, tt := range tests {
		got := quote(tt.in, tt.style)
		assert.Equal(t, tt.want, got, "quote(%s, %v)", tt.in, tt.style)
		assert.Equal(t, got, quote(got, tt.style), "not idempotent: %s", got)
	}
}
