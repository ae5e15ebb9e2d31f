package store

func (s *Store) GameScores() []GameScore {
	return loadList[GameScore](s, KeyGameScores)
}

// AppendGameScore appends one round's result to the score log.
func (s *Store) AppendGameScore(score GameScore) error {
	scores := s.GameScores()
	scores = append(scores, score)
	return saveList(s, KeyGameScores, scores)
}
