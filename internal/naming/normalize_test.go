package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNormalIdent(t *testing.T) {
	tests := map[string]string{
		"ID":              "id",
		"id":              "id",
		"UserName":        "user_name",
		"userName":        "user_name",
		"user_name":       "user_name",
		"OrderID":         "order_id",
		"CreatedAt":       "created_at",
		"PasswordHash":    "password_hash",
		"XMLParser":       "xml_parser",
		"getHTTPResponse": "get_http_response",
		"parseURL":        "parse_url",
		"user__name":      "user_name",
		"_user_name_":     "user_name",
		"type_":           "type",
		"order-item ID":   "order_item_id",
		"Line2Name":       "line2_name",
		"IPv4Addr":        "i_pv4_addr",
		"ÄnderungsDatum":  "änderungs_datum",
		"":                "",
		"a":               "a",
		"A":               "a",
		"_":               "",
		"__":              "",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, ToNormalIdent(input))
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"Order", "ID"}},
		{"customerName", []string{"customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"order_id", []string{"order", "id"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"lowercase", []string{"lowercase"}},
		{"AB", []string{"AB"}},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"_Name", []string{"Name"}},
		{"Tier2", []string{"Tier2"}},
		{"-", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.input))
		})
	}
}

func TestToNormalIdent_Idempotent(t *testing.T) {
	for _, s := range []string{"UserName", "XMLParser", "Line2Name", "order-item ID"} {
		once := ToNormalIdent(s)
		assert.Equal(t, once, ToNormalIdent(once), s)
	}
}
