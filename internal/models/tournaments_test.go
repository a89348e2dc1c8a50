package models

import "testing"

func TestFindPlayer(t *testing.T) {
	detail := &TournamentDetail{
		Teams: []TournamentTeam{
			{ID: 1, Players: []PlayerRecord{{PlayerIdentity: PlayerIdentity{Username: "alice", UUID: "0f8fad5b-d9cb-469f-a165-70867728950e"}}}},
			{ID: 2, Players: []PlayerRecord{{PlayerIdentity: PlayerIdentity{Username: "bob", UUID: "7c9e6679742540de944be07fc1f90ae7"}}}},
			{ID: 3, Players: []PlayerRecord{{PlayerIdentity: PlayerIdentity{Username: "ghost"}}}},
		},
	}

	tests := []struct {
		name string
		uuid string
		want string
		ok   bool
	}{
		{"exact dashed", "0f8fad5b-d9cb-469f-a165-70867728950e", "alice", true},
		{"undashed query", "0f8fad5bd9cb469fa16570867728950e", "alice", true},
		{"dashed query for undashed record", "7c9e6679-7425-40de-944b-e07fc1f90ae7", "bob", true},
		{"upper case", "7C9E6679742540DE944BE07FC1F90AE7", "bob", true},
		{"unknown", "00000000-0000-0000-0000-000000000000", "", false},
		{"empty never matches records without uuid", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detail.FindPlayer(tt.uuid)
			if ok != tt.ok {
				t.Fatalf("FindPlayer(%q) ok = %v, want %v", tt.uuid, ok, tt.ok)
			}
			if got.Username != tt.want {
				t.Errorf("FindPlayer(%q) = %q, want %q", tt.uuid, got.Username, tt.want)
			}
		})
	}

	if n := len(detail.Players()); n != 3 {
		t.Errorf("Players() len = %d, want 3", n)
	}
}
