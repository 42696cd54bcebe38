package models

import "testing"

func TestComputePomodoroStats(t *testing.T) {
	tests := []struct {
		name     string
		sessions []PomodoroSession
		want     PomodoroStats
	}{
		{name: "empty", sessions: nil, want: PomodoroStats{}},
		{
			name: "mixed",
			sessions: []PomodoroSession{
				{Duration: 25, Completed: true, SessionType: SessionWork},
				{Duration: 25, Completed: false, SessionType: SessionWork},
				{Duration: 5, Completed: true, SessionType: SessionShortBreak},
				{Duration: 15, Completed: true, SessionType: SessionLongBreak},
			},
			// (25+5+15)/3 = 15
			want: PomodoroStats{TotalSessions: 4, CompletedSessions: 3, TotalFocusTime: 25, AverageSessionLength: 15},
		},
		{
			name: "average rounds half up",
			sessions: []PomodoroSession{
				{Duration: 25, Completed: true, SessionType: SessionWork},
				{Duration: 24, Completed: true, SessionType: SessionWork},
			},
			want: PomodoroStats{TotalSessions: 2, CompletedSessions: 2, TotalFocusTime: 49, AverageSessionLength: 25},
		},
		{
			name:     "nothing completed",
			sessions: []PomodoroSession{{Duration: 25, SessionType: SessionWork}},
			want:     PomodoroStats{TotalSessions: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputePomodoroStats(tt.sessions); got != tt.want {
				t.Errorf("ComputePomodoroStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPomodoroSession_Validate(t *testing.T) {
	tests := []struct {
		name    string
		session NewPomodoroSession
		wantErr bool
	}{
		{name: "valid", session: NewPomodoroSession{UserID: "u", Duration: 25, SessionType: SessionWork}},
		{name: "zero duration", session: NewPomodoroSession{UserID: "u", SessionType: SessionWork}, wantErr: true},
		{name: "bad type", session: NewPomodoroSession{UserID: "u", Duration: 5, SessionType: "nap"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.session.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
