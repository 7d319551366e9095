package querybuilder

import "testing"

func TestSelectBuilder_FiltersAndPaging(t *testing.T) {
	query, args, err := Select("a.id", "a.name").
		From("athletes a LEFT JOIN users u ON u.id = a.user_id").
		Where(
			Eq("a.is_active", true),
			Any("a.preferred_positions", "PIVO"),
			Or(ContainsFold("a.name", "ana"), ContainsFold("u.email", "ana")),
		).
		OrderBy("a.created_at DESC").
		Limit(20).
		Offset(40).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT a.id, a.name FROM athletes a LEFT JOIN users u ON u.id = a.user_id " +
		"WHERE a.is_active = $1 AND $2 = ANY(a.preferred_positions) AND (a.name ILIKE $3 OR u.email ILIKE $4) " +
		"ORDER BY a.created_at DESC LIMIT 20 OFFSET 40"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != true || args[1] != "PIVO" || args[2] != "%ana%" || args[3] != "%ana%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_Count(t *testing.T) {
	base := Select("*").
		From("matches").
		Where(Gte("match_date", "2026-01-01"), Lte("match_date", "2026-01-31")).
		OrderBy("match_date").
		Limit(10).
		Offset(10)

	query, args, err := base.Count().ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}

	wantQuery := "SELECT COUNT(*) FROM matches WHERE match_date >= $1 AND match_date <= $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprAndLt(t *testing.T) {
	ids := []string{"m1", "m2"}
	query, args, err := Select("id").
		From("matches").
		Where(Lt("match_date", "2025-03-10"), Expr("id = ANY(?)", ids)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE match_date < $1 AND id = ANY($2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2025-03-10" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestContainsFold_EscapesWildcards(t *testing.T) {
	_, args, err := Select("id").From("athletes").Where(ContainsFold("name", "50%_off")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("unexpected escaped arg: %v", args[0])
	}
}

func TestOr_EmptyNeverMatches(t *testing.T) {
	query, _, err := Select("id").From("athletes").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM athletes WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("match_confirmations").
		Columns("id", "athlete_id", "match_id").
		Values("c1", "a1", "m1").
		Suffix("ON CONFLICT (athlete_id, match_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_confirmations (id, athlete_id, match_id) VALUES ($1, $2, $3) ON CONFLICT (athlete_id, match_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "c1" || args[2] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_Conditional(t *testing.T) {
	query, args, err := Update("financial_pendencies").
		Set("status", "PAGO").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "p1"), Eq("status", "PENDENTE")).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE financial_pendencies SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3 RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "PAGO" || args[1] != "p1" || args[2] != "PENDENTE" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_confirmations").
		Where(Eq("athlete_id", "a1"), Eq("match_id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM match_confirmations WHERE athlete_id = $1 AND match_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("match_confirmations").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertModel(t *testing.T) {
	row := struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Ignored string `db:"-"`
		hidden  string
	}{ID: "p1", Name: "Quadra"}
	_ = row.hidden

	query, args, err := InsertModel("places", row, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO places (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
