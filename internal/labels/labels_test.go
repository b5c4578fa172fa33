package labels

import "testing"

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"email":              "Email",
		"first_name":         "First Name",
		"postalCode":         "Postal Code",
		"billing.postalCode": "Billing Postal Code",
		"address-line2":      "Address Line 2",
		"ciudad_órbita":      "Ciudad Órbita",
		"API_KEY":            "Api Key",
	}
	for input, want := range cases {
		if got := FromName(input); got != want {
			t.Fatalf("FromName(%q) = %q, want %q", input, got, want)
		}
	}
}
