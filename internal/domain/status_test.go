package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		text string
		want StateStatus
	}{
		{"list", Software(SoftwareList)},
		{"update", Software(SoftwareUpdate)},
		{"Pending", Restart(RestartPending)},
		{"Restarting", Restart(RestartRestarting)},
		{"List", UnknownOperation()},
		{"pending", UnknownOperation()},
		{"", UnknownOperation()},
		{"reboot", UnknownOperation()},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseStatus(tt.text); got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStateStatus_MarshalText(t *testing.T) {
	tests := []struct {
		name    string
		status  StateStatus
		want    string
		wantErr bool
	}{
		{name: "software list", status: Software(SoftwareList), want: "list"},
		{name: "software update", status: Software(SoftwareUpdate), want: "update"},
		{name: "restart pending", status: Restart(RestartPending), want: "Pending"},
		{name: "restart restarting", status: Restart(RestartRestarting), want: "Restarting"},
		{name: "unknown", status: UnknownOperation(), want: "unknown"},
		{name: "bad software phase", status: Software("install"), wantErr: true},
		{name: "bad restart phase", status: Restart("pending"), wantErr: true},
		{name: "bad kind", status: StateStatus{Kind: StatusKind(42)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.status.MarshalText()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("MarshalText() expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("MarshalText() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStateStatus_TextRoundTrip(t *testing.T) {
	for _, st := range []StateStatus{
		Software(SoftwareList),
		Software(SoftwareUpdate),
		Restart(RestartPending),
		Restart(RestartRestarting),
		UnknownOperation(),
	} {
		text, err := st.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", st, err)
		}
		var got StateStatus
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != st {
			t.Errorf("round trip of %v = %v", st, got)
		}
	}
}

func TestStateStatus_String(t *testing.T) {
	if got := Software(SoftwareList).String(); got != "Software(list)" {
		t.Errorf("String() = %q", got)
	}
	if got := Restart(RestartPending).String(); got != "Restart(Pending)" {
		t.Errorf("String() = %q", got)
	}
	if got := UnknownOperation().String(); got != "UnknownOperation" {
		t.Errorf("String() = %q", got)
	}
}
