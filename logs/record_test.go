package logs

import "testing"

func TestSeverityStringClassifiesByRange(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityUnspecified, "UNSPECIFIED"},
		{SeverityTrace1, "TRACE"},
		{SeverityTrace4, "TRACE"},
		{SeverityDebug2, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityInfo4, "INFO"},
		{SeverityWarn3, "WARN"},
		{SeverityError, "ERROR"},
		{SeverityFatal4, "FATAL"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestSeverityAliasesMatchFirstInClass(t *testing.T) {
	cases := map[Severity]Severity{
		SeverityTrace: SeverityTrace1,
		SeverityDebug: SeverityDebug1,
		SeverityInfo:  SeverityInfo1,
		SeverityWarn:  SeverityWarn1,
		SeverityError: SeverityError1,
		SeverityFatal: SeverityFatal1,
	}
	for alias, want := range cases {
		if alias != want {
			t.Errorf("alias %v != %v", alias, want)
		}
	}
}

func TestSeverityConstantsAreSequential(t *testing.T) {
	// Each class spans exactly 4 contiguous values; a regression here
	// would silently shift every severity above it by one.
	if SeverityDebug1-SeverityTrace4 != 1 {
		t.Errorf("SeverityDebug1 does not immediately follow SeverityTrace4")
	}
	if SeverityFatal4 != 24 {
		t.Errorf("SeverityFatal4 = %d, want 24", int(SeverityFatal4))
	}
}
