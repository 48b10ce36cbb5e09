package serverscsv

import "testing"

func TestParseIPv4AndDefaultPort(t *testing.T) {
	out, err := Parse("8.8.8.8:5353,1.1.1.1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Parse() = %v, want 2 entries", out)
	}
	if out[0].Addr.String() != "8.8.8.8" || out[0].Port != 5353 {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].Addr.String() != "1.1.1.1" || out[1].Port != 0 {
		t.Errorf("out[1] = %+v", out[1])
	}
}

func TestParseIPv6BareDefaultsToZeroPort(t *testing.T) {
	out, err := Parse("2001:db8::dead:beef")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(out) != 1 || out[0].Addr.String() != "2001:db8::dead:beef" || out[0].Port != 0 {
		t.Fatalf("Parse() = %+v", out)
	}
}

func TestParseIPv6BracketedWithPort(t *testing.T) {
	out, err := Parse("[2001:db8::dead:beef]:5300")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(out) != 1 || out[0].Addr.String() != "2001:db8::dead:beef" || out[0].Port != 5300 {
		t.Fatalf("Parse() = %+v", out)
	}
}

func TestParseMixedSeparators(t *testing.T) {
	out, err := Parse("8.8.4.4:53,\n[::1]:5353\n2001:4860:4860::8888")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Parse() = %v, want 3 entries", out)
	}
	if out[0].Port != 53 || out[1].Port != 5353 || out[2].Port != 0 {
		t.Fatalf("Parse() = %+v", out)
	}
}

func TestParseIgnoresEmptyTokens(t *testing.T) {
	out, err := Parse(",, 8.8.8.8 ,, [::1]:5353 ,")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Parse() = %v, want 2 entries", out)
	}
	if out[0].Addr.String() != "8.8.8.8" || out[1].Addr.String() != "::1" || out[1].Port != 5353 {
		t.Fatalf("Parse() = %+v", out)
	}
}

func TestParseInvalidServerErrors(t *testing.T) {
	if _, err := Parse("not-an-address"); err == nil {
		t.Fatal("Parse() with a malformed entry should fail")
	}
}
