package rows

import (
	"encoding/json"
	"testing"
)

func TestFilterSet_Map(t *testing.T) {
	tests := []struct {
		name    string
		filters FilterSet
		want    map[string]any
	}{
		{
			name:    "empty",
			filters: nil,
			want:    map[string]any{},
		},
		{
			name:    "distinct keys",
			filters: FilterSet{{Key: "searchText", Value: "bil"}, {Key: "status", Value: "open"}},
			want:    map[string]any{"searchText": "bil", "status": "open"},
		},
		{
			name:    "last write wins",
			filters: FilterSet{{Key: "searchText", Value: "bob"}, {Key: "searchText", Value: "nick"}},
			want:    map[string]any{"searchText": "nick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filters.Map()
			if len(got) != len(tt.want) {
				t.Fatalf("Map() len = %d, want %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Map()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestNewPayload(t *testing.T) {
	p := NewPayload(5, FilterSet{{Key: "searchText", Value: "bil"}})

	idx, err := p.RowIndex()
	if err != nil {
		t.Fatalf("RowIndex() error = %v", err)
	}
	if idx != 5 {
		t.Errorf("RowIndex() = %d, want 5", idx)
	}
	if p["searchText"] != "bil" {
		t.Errorf("searchText = %v, want bil", p["searchText"])
	}

	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(body) != `{"rowIndex":5,"searchText":"bil"}` {
		t.Errorf("body = %s", body)
	}
}

func TestNewPayload_RowIndexOverridesFilter(t *testing.T) {
	p := NewPayload(3, FilterSet{{Key: RowIndexKey, Value: 99}})

	idx, err := p.RowIndex()
	if err != nil {
		t.Fatalf("RowIndex() error = %v", err)
	}
	if idx != 3 {
		t.Errorf("RowIndex() = %d, want 3", idx)
	}
}

func TestPayload_RowIndex(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    int
		wantErr bool
	}{
		{name: "int", payload: Payload{RowIndexKey: 4}, want: 4},
		{name: "float64 from json", payload: Payload{RowIndexKey: float64(10)}, want: 10},
		{name: "json number", payload: Payload{RowIndexKey: json.Number("7")}, want: 7},
		{name: "missing", payload: Payload{}, wantErr: true},
		{name: "string", payload: Payload{RowIndexKey: "5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.RowIndex()
			if (err != nil) != tt.wantErr {
				t.Fatalf("RowIndex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RowIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}
