package types

import "testing"

func TestParseFormat(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    Format
		wantErr bool
	}{
		"mp4":        {in: "mp4", want: FormatMP4},
		"upper case": {in: "WEBM", want: FormatWebM},
		"padded":     {in: " mov ", want: FormatMOV},
		"3gpp":       {in: "3gpp", want: Format3GPP},
		"mkv":        {in: "mkv", wantErr: true},
		"empty":      {in: "", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseFormat(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatMPEGPS.Ext(); got != ".mpegps" {
		t.Fatalf("Ext() = %q", got)
	}
}

func TestSupportsFastStart(t *testing.T) {
	for _, f := range Formats() {
		want := f == FormatMP4 || f == FormatMOV || f == Format3GPP
		if got := f.SupportsFastStart(); got != want {
			t.Fatalf("%s SupportsFastStart() = %v, want %v", f, got, want)
		}
	}
}
