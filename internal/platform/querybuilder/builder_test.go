package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "normalized_name").
		From("players").
		Where(Eq("normalized_name", "facundo campazzo"), IsNull("birth_date")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, normalized_name FROM players WHERE normalized_name = $1 AND birth_date IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "facundo campazzo" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprRenumbersPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("players").
		Where(
			Eq("nationality", "ARG"),
			Expr("external_ids ->> ? = ?", "euroleague", "P001"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM players WHERE nationality = $1 AND external_ids ->> $2 = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "euroleague" || args[2] != "P001" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_MissingTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for select without table")
	}
}

func TestInsertBuilder_Suffix(t *testing.T) {
	query, args, err := InsertInto("team_rosters").
		Columns("team_id", "player_id").
		Values("t-1", "p-1").
		Suffix("ON CONFLICT (team_id, player_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_rosters (team_id, player_id) VALUES ($1, $2) ON CONFLICT (team_id, player_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t-1" || args[1] != "p-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("team_rosters").
		Columns("team_id", "player_id").
		Values("t-1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestInsertModel(t *testing.T) {
	type rosterRow struct {
		TeamID   string `db:"team_id"`
		PlayerID string `db:"player_id"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("team_rosters", rosterRow{TeamID: "t-1", PlayerID: "p-1", internal: "x", Skipped: "y"}, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO team_rosters (team_id, player_id) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t-1" || args[1] != "p-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_SetExpr(t *testing.T) {
	query, args, err := Update("players").
		Set("nationality", "ARG").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "p-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET nationality = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "ARG" || args[1] != "p-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
