package extract

import "testing"

func resolve(t *testing.T, rows ...Row) []RawRecord {
	t.Helper()
	r := NewResolver(DefaultStrategy())
	return r.ResolveSection(Section{Region: "Matanzas", Rows: rows})
}

func TestResolverOneRecordPerCategoryRow(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel", "casaazul@nauta.cu", "1234567"),
		mkRow(600, "Rancho Grande", "Posada"),
	)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	want := RawRecord{Name: "Casa Azul", Category: "Hotel", Email: "casaazul@nauta.cu", Phone: "1234567"}
	if records[0] != want {
		t.Errorf("first record = %+v, want %+v", records[0], want)
	}
}

func TestResolverCompoundCategoryContinuation(t *testing.T) {
	// "Hostal" then "Familiar" is one record with the compound modalidad,
	// not two records.
	records := resolve(t,
		mkRow(700, "Rincón Criollo", "Hostal"),
		mkRow(600, "Familiar"),
	)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(records), records)
	}
	if records[0].Category != "Hostal Familiar" {
		t.Errorf("category = %q, want 'Hostal Familiar'", records[0].Category)
	}
	if records[0].Name != "Rincón Criollo" {
		t.Errorf("name = %q, the compound half must not leak into the name", records[0].Name)
	}
}

func TestResolverRowWithoutCategoryContinues(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Residencia los", "Albergue"),
		mkRow(600, "Hermanos García"),
		mkRow(500, "Casa Azul", "Hotel"),
	)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Name != "Residencia los Hermanos García" {
		t.Errorf("name = %q, want merged split name", records[0].Name)
	}
}

func TestResolverEmailSplitAcrossRows(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel", "casaazul@"),
		mkRow(600, "nauta.cu"),
	)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(records), records)
	}
	if records[0].Email != "casaazul@nauta.cu" {
		t.Errorf("email = %q, want abutted 'casaazul@nauta.cu'", records[0].Email)
	}
	if records[0].Name != "Casa Azul" {
		t.Errorf("name = %q, domain tail must not leak into the name", records[0].Name)
	}
}

func TestResolverPhoneHyphenContinuation(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel", "7867-"),
		mkRow(600, "4521"),
	)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(records), records)
	}
	if records[0].Phone != "78674521" {
		t.Errorf("phone = %q, want hyphen dropped and digits abutted", records[0].Phone)
	}
}

func TestResolverPhoneSlashKeepsSecondNumber(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel", "1234567/"),
		mkRow(600, "2345678"),
	)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(records), records)
	}
	if records[0].Phone != "1234567/ 2345678" {
		t.Errorf("phone = %q, want slash kept with separating space", records[0].Phone)
	}
}

func TestResolverNoiseOnlyRowIgnored(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel"),
		mkRow(650, "Nombre", "Modalidad", "Correo Principal", "Teléfono"),
		mkRow(600, "Rancho Grande", "Posada"),
	)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
}

func TestResolverFlushesOpenRecordAtSectionEnd(t *testing.T) {
	records := resolve(t,
		mkRow(700, "Casa Azul", "Hotel"),
	)

	if len(records) != 1 {
		t.Fatalf("expected the open record to be flushed, got %d", len(records))
	}
}

func TestResolverEmptySectionYieldsNothing(t *testing.T) {
	records := resolve(t)

	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}
