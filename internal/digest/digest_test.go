package digest

import (
	"encoding/hex"
	"testing"
)

func TestLookupKnownAnswers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, c := range cases {
		newHash, err := Lookup(c.name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", c.name, err)
		}
		got := hex.EncodeToString(Sum(newHash, []byte(c.in)))
		if got != c.want {
			t.Errorf("%s(%q) = %s, want %s", c.name, c.in, got, c.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("rot13"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}
