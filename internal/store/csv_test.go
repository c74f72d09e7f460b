package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rflinks/internal/memory"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

const csvHeader = "Link_ID,POP_Name,BTS_Name,Client_Name,Base_IP,Client_IP,Loopback_IP,Location"

func openEmpty(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	mem := memory.NewWithRecords([]types.Record{})
	s, err := Open(mem)
	require.NoError(t, err)
	return s, mem
}

func exportString(t *testing.T, s *Store) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(&buf))
	return buf.String()
}

func TestExportCSV(t *testing.T) {
	mem := memory.NewWithRecords([]types.Record{
		{ID: "LNK-1", POPName: "Barisal Robi", BTSName: "Barisal Robi", ClientName: "Barishal Robi to Muladi BL",
			BaseIP: "10.30.133.122", ClientIP: "10.30.133.123", LoopbackIP: "10.30.133.222", Location: "Muladi"},
		{ID: "LNK-2", POPName: `Say "hi"`, ClientName: "a, b", Location: "Kahalo BB"},
	})
	s, err := Open(mem)
	require.NoError(t, err)

	want := csvHeader + "\n" +
		`"LNK-1","Barisal Robi","Barisal Robi","Barishal Robi to Muladi BL","10.30.133.122","10.30.133.123","10.30.133.222","Muladi"` + "\n" +
		`"LNK-2","Say ""hi""","","a, b","","","","Kahalo BB"`
	assert.Equal(t, want, exportString(t, s))
}

func TestExportCSVEmptyCollection(t *testing.T) {
	s, _ := openEmpty(t)
	assert.Equal(t, csvHeader, exportString(t, s))
}

func TestExportIgnoresViews(t *testing.T) {
	s, _ := openFixture(t)
	_ = Paginate(s.Search("muladi"), 1, 1)
	lines := strings.Split(exportString(t, s), "\n")
	assert.Len(t, lines, 1+len(fixture()))
}

func TestImportExportRoundTrip(t *testing.T) {
	src := fixture()
	src = append(src,
		types.Record{ID: "LNK-Q", POPName: `quote "inside"`, ClientName: "comma, inside", Location: "line\nbreak"},
		types.Record{ID: "LNK-S", POPName: "  padded  ", Location: ""},
	)
	from, err := Open(memory.NewWithRecords(src))
	require.NoError(t, err)
	exported := exportString(t, from)

	to, mem := openEmpty(t)
	res, err := to.ImportCSV(strings.NewReader(exported))
	require.NoError(t, err)
	assert.Equal(t, len(src), res.Imported)
	assert.Zero(t, res.Duplicates)
	assert.Zero(t, res.Malformed)

	sortByID := cmpopts.SortSlices(func(a, b types.Record) bool { return a.ID < b.ID })
	if diff := cmp.Diff(src, to.All(), sortByID); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src, stored(t, mem), sortByID); diff != "" {
		t.Errorf("persisted round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportNeverOverwrites(t *testing.T) {
	s, mem := openFixture(t)
	input := csvHeader + "\n" +
		`"LNK-1","Hijacked","","","","","","Nowhere"` + "\n" +
		`"LNK-6","Dhaka POP","Gulshan BTS","Gulshan 1","10.1.1.1","10.1.1.2","","Gulshan"`

	res, err := s.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Duplicates: 1}, res)

	got, err := s.Get("LNK-1")
	require.NoError(t, err)
	assert.Equal(t, fixture()[0], got)

	got, err = s.Get("LNK-6")
	require.NoError(t, err)
	assert.Equal(t, "Gulshan", got.Location)
	assert.Equal(t, "LNK-6", s.All()[5].ID, "imported records are appended")
	assert.Len(t, stored(t, mem), 6)
}

func TestImportTrimsLinkID(t *testing.T) {
	s, _ := openFixture(t)
	input := csvHeader + "\n" +
		` LNK-1 ,Hijacked,,,,,,Nowhere` + "\n" +
		`"  LNK-8 "," Padded POP ",,,,,,`

	res, err := s.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Duplicates: 1}, res)

	got, err := s.Get("LNK-8")
	require.NoError(t, err)
	assert.Equal(t, " Padded POP ", got.POPName, "only the ID is trimmed")
	assert.Equal(t, []string{"LNK-1", "LNK-2", "LNK-3", "LNK-4", "LNK-5", "LNK-8"}, ids(s.All()))
}

func TestImportDuplicateWithinFile(t *testing.T) {
	s, _ := openEmpty(t)
	input := csvHeader + "\n" +
		`"LNK-7","first","","","","","",""` + "\n" +
		`"LNK-7","second","","","","","",""`

	res, err := s.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Duplicates)

	got, err := s.Get("LNK-7")
	require.NoError(t, err)
	assert.Equal(t, "first", got.POPName)
}

func TestImportColumnMapping(t *testing.T) {
	t.Run("missing Loopback_IP defaults to empty", func(t *testing.T) {
		s, _ := openEmpty(t)
		input := "Link_ID,POP_Name,BTS_Name,Client_Name,Base_IP,Client_IP,Location\n" +
			"LNK-1,Barisal Robi,Barisal Robi,Muladi BL,10.30.133.122,10.30.133.123,Muladi\n"

		res, err := s.ImportCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 1, res.Imported)

		got, err := s.Get("LNK-1")
		require.NoError(t, err)
		assert.Equal(t, types.Record{
			ID: "LNK-1", POPName: "Barisal Robi", BTSName: "Barisal Robi", ClientName: "Muladi BL",
			BaseIP: "10.30.133.122", ClientIP: "10.30.133.123", Location: "Muladi",
		}, got)
	})

	t.Run("columns are matched by name in any order", func(t *testing.T) {
		s, _ := openEmpty(t)
		input := "Location, Link_ID ,Notes\nMuladi,LNK-1,ignored\n"

		_, err := s.ImportCSV(strings.NewReader(input))
		require.NoError(t, err)
		got, err := s.Get("LNK-1")
		require.NoError(t, err)
		assert.Equal(t, types.Record{ID: "LNK-1", Location: "Muladi"}, got)
	})

	t.Run("short rows leave trailing fields empty", func(t *testing.T) {
		s, _ := openEmpty(t)
		input := csvHeader + "\nLNK-1,Barisal Robi\n"

		_, err := s.ImportCSV(strings.NewReader(input))
		require.NoError(t, err)
		got, err := s.Get("LNK-1")
		require.NoError(t, err)
		assert.Equal(t, types.Record{ID: "LNK-1", POPName: "Barisal Robi"}, got)
	})

	t.Run("BOM, CRLF and blank lines", func(t *testing.T) {
		s, _ := openEmpty(t)
		input := "\ufeff" + csvHeader + "\r\n\r\n\"LNK-1\",\"P\",\"\",\"\",\"\",\"\",\"\",\"L\"\r\n\r\n"

		res, err := s.ImportCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Zero(t, res.Malformed)
	})
}

func TestImportRejectsHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no Link_ID column", "POP_Name,Location\nBarisal Robi,Muladi\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := openFixture(t)
			_, err := s.ImportCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, types.ErrMalformedHeader)
			assert.Equal(t, fixture(), s.All())
			assert.Equal(t, 0, mem.Saves)
		})
	}
}

func TestImportSkipsMalformedRows(t *testing.T) {
	s, _ := openEmpty(t)
	input := csvHeader + "\n" +
		`LNK-1,P,B,C,1,2,3,L` + "\n" + // line 2: good
		`LNK-2,P,B,C,1,2,3,L,extra` + "\n" + // line 3: too many fields
		`,P,B,C,1,2,3,L` + "\n" + // line 4: no ID
		`LNK-4,a"b,B,C,1,2,3,L` + "\n" + // line 5: bare quote
		`LNK-5,P,B,C,1,2,3,L` // line 6: good

	res, err := s.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Malformed)
	require.Len(t, res.Errors, 3)

	lines := []int{}
	for _, e := range res.Errors {
		assert.ErrorIs(t, e, types.ErrMalformedRow)
		lines = append(lines, e.Line)
	}
	assert.Equal(t, []int{3, 4, 5}, lines)
	assert.Equal(t, []string{"LNK-1", "LNK-5"}, ids(s.All()))
}

func TestImportNothingNewSkipsPersist(t *testing.T) {
	s, mem := openFixture(t)
	res, err := s.ImportCSV(strings.NewReader(exportString(t, s)))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Duplicates: 5}, res)
	assert.Equal(t, 0, mem.Saves)
}
