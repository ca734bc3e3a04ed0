package cli

import (
	"reflect"
	"testing"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"numbers", "1,3,5", []int{1, 3, 5}, false},
		{"short names", "mon,wed,fri", []int{1, 3, 5}, false},
		{"full names", "sunday,saturday", []int{0, 6}, false},
		{"mixed case and spaces", " Mon, TUE ,3", []int{1, 2, 3}, false},
		{"out of range number", "7", nil, true},
		{"unknown name", "someday", nil, true},
		{"empty part", "mon,,fri", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
