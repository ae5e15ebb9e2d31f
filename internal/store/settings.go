package store

// PomodoroSettings returns the persisted timer configuration, falling back
// to defaults when absent or unreadable.
func (s *Store) PomodoroSettings() PomodoroSettings {
	if v, ok := loadOne[PomodoroSettings](s, KeyPomodoroSettings); ok {
		return v
	}
	return DefaultPomodoroSettings()
}

func (s *Store) SavePomodoroSettings(v PomodoroSettings) error {
	return saveOne(s, KeyPomodoroSettings, v)
}

// AppSettings returns the singleton settings record, falling back to
// defaults when absent or unreadable.
func (s *Store) AppSettings() AppSettings {
	if v, ok := loadOne[AppSettings](s, KeyAppSettings); ok {
		return v
	}
	return DefaultAppSettings()
}

func (s *Store) SaveAppSettings(v AppSettings) error {
	return saveOne(s, KeyAppSettings, v)
}
