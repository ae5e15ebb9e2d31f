package store

// Sessions returns the full pomodoro session history, oldest first.
func (s *Store) Sessions() []Session {
	return loadList[Session](s, KeyPomodoroSessions)
}

func (s *Store) SaveSessions(sessions []Session) error {
	return saveList(s, KeyPomodoroSessions, sessions)
}

// AppendSession appends one completed session to the history.
func (s *Store) AppendSession(sess Session) error {
	sessions := s.Sessions()
	sessions = append(sessions, sess)
	return s.SaveSessions(sessions)
}

// TimerSessions returns the stopwatch history, oldest first.
func (s *Store) TimerSessions() []TimerSession {
	return loadList[TimerSession](s, KeyTimerSessions)
}

func (s *Store) AppendTimerSession(ts TimerSession) error {
	sessions := s.TimerSessions()
	sessions = append(sessions, ts)
	return saveList(s, KeyTimerSessions, sessions)
}
