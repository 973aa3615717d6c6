package storage

import "testing"

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("snake", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("dino", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
		if scores[i].GameID != "snake" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}

	dinoScores, err := store.TopScores("dino", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(dinoScores) != 1 {
		t.Errorf("Expected 1 dino score, got %d", len(dinoScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 15; i++ {
		store.SaveScore("dino", (i+1)*100)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{3, 3},
		{0, 10},
		{-1, 10},
		{50, 15},
	}
	for _, tc := range tests {
		scores, err := store.TopScores("dino", tc.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tc.limit, err)
		}
		if len(scores) != tc.want {
			t.Errorf("TopScores(%d) returned %d rows, expected %d", tc.limit, len(scores), tc.want)
		}
	}

	top, _ := store.TopScores("dino", 3)
	if top[0].Score != 1500 || top[1].Score != 1400 || top[2].Score != 1300 {
		t.Errorf("Scores not in expected order: %v", top)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("snake", 10)
	store.SaveScore("snake", 30)
	store.SaveScore("snake", 20)

	if high, _ = store.HighScore("snake"); high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("snake", 100)
	store.SaveScore("snake", 200)
	store.SaveScore("dino", 300)

	if err := store.ClearScores("snake"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("snake", 10); len(scores) != 0 {
		t.Errorf("Expected 0 snake scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("dino", 10); len(scores) != 1 {
		t.Error("dino scores should not be affected by clearing snake")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		store.SaveScore("dino", i*10)
	}

	scores, err := store.AllScores("dino")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("snake", 10)
	store.SaveScore("snake", 30)
	store.SaveScore("dino", 7)

	st, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if st.GamesCount != 2 || st.HighScore != 30 || st.AvgScore != 20 || st.TotalScore != 40 {
		t.Errorf("stats = %+v", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["dino"].HighScore != 7 || all["snake"].GamesCount != 2 {
		t.Errorf("all stats = %v", all)
	}
}
