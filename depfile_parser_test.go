// Copyright 2011 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nin

import (
	"strings"
	"testing"
)

// parse is a test helper: Parse mutates its input in place and requires a
// trailing NUL, so callers build a fresh buffer every time.
func parse(t *testing.T, text string) *DepfileParser {
	t.Helper()
	p := &DepfileParser{}
	buf := append([]byte(text), 0)
	if err := p.Parse(buf); err != nil {
		t.Fatalf("Parse(%q) = %v", text, err)
	}
	return p
}

func TestDepfileParser_Basic(t *testing.T) {
	p := parse(t, "a.o: b c\n")
	if got := strings.Join(p.Outs(), ","); got != "a.o" {
		t.Errorf("Outs() = %v", p.Outs())
	}
	if got := strings.Join(p.Ins(), ","); got != "b,c" {
		t.Errorf("Ins() = %v", p.Ins())
	}
}

func TestDepfileParser_DuplicateInputSuppressed(t *testing.T) {
	// "a.o: b c b" yields outs=[a.o], ins=[b,c] -- the repeated "b" is not
	// duplicated in Ins().
	p := parse(t, "a.o: b c b\n")
	if got := strings.Join(p.Outs(), ","); got != "a.o" {
		t.Errorf("Outs() = %v", p.Outs())
	}
	if got := strings.Join(p.Ins(), ","); got != "b,c" {
		t.Errorf("Ins() = %v, want [b c]", p.Ins())
	}
}

func TestDepfileParser_PoisonedInput(t *testing.T) {
	// "a.o: b c a.o: d" -- once b and c have been read as inputs, the
	// target-like "a.o:" token poisons the rule, so the next new input "d"
	// is rejected. A newline ends a rule and clears the poisoning.
	p := &DepfileParser{}
	buf := append([]byte("a.o: b c a.o: d\n"), 0)
	err := p.Parse(buf)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if err.Error() != "inputs may not also have inputs" {
		t.Errorf("err = %q", err.Error())
	}
}

func TestDepfileParser_MissingColon(t *testing.T) {
	p := &DepfileParser{}
	buf := append([]byte("a.o b c\n"), 0)
	err := p.Parse(buf)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if err.Error() != "expected ':' in depfile" {
		t.Errorf("err = %q", err.Error())
	}
}

func TestDepfileParser_MultipleRules(t *testing.T) {
	p := parse(t, "foo.o: foo.c foo.h\nbar.o: bar.c foo.h\n")
	if got := strings.Join(p.Outs(), ","); got != "foo.o,bar.o" {
		t.Errorf("Outs() = %v", p.Outs())
	}
	if got := strings.Join(p.Ins(), ","); got != "foo.c,foo.h,bar.c" {
		t.Errorf("Ins() = %v", p.Ins())
	}
}

func TestDepfileParser_EscapedSpace(t *testing.T) {
	p := parse(t, `a.o: foo\ bar.h`+"\n")
	if len(p.Ins()) != 1 || p.Ins()[0] != "foo bar.h" {
		t.Errorf("Ins() = %v, want [\"foo bar.h\"]", p.Ins())
	}
}

func TestDepfileParser_EscapedHash(t *testing.T) {
	p := parse(t, `a.o: foo\#bar.h`+"\n")
	if len(p.Ins()) != 1 || p.Ins()[0] != "foo#bar.h" {
		t.Errorf("Ins() = %v, want [\"foo#bar.h\"]", p.Ins())
	}
}

func TestDepfileParser_LineContinuation(t *testing.T) {
	p := parse(t, "a.o: foo.h \\\n bar.h\n")
	if got := strings.Join(p.Ins(), ","); got != "foo.h,bar.h" {
		t.Errorf("Ins() = %v", p.Ins())
	}
}

func TestDepfileParser_DollarDollar(t *testing.T) {
	p := parse(t, "a.o: weird$$file.h\n")
	if len(p.Ins()) != 1 || p.Ins()[0] != "weird$file.h" {
		t.Errorf("Ins() = %v", p.Ins())
	}
}
