package store

func (s *Store) Habits() []Habit {
	return loadList[Habit](s, KeyHabits)
}

func (s *Store) SaveHabits(habits []Habit) error {
	return saveList(s, KeyHabits, habits)
}

func (s *Store) Completions() []HabitCompletion {
	return loadList[HabitCompletion](s, KeyHabitCompletions)
}

func (s *Store) SaveCompletions(completions []HabitCompletion) error {
	return saveList(s, KeyHabitCompletions, completions)
}
