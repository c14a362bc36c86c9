package netmdq_test

import (
	"sync"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/netmdq"
	"github.com/stewi1014/netmdq/query"
	"github.com/stretchr/testify/require"
)

// queries are payload shapes from real exchanges; status reads, title
// updates and the like. Each round-trips through its format string.
var queries = []struct {
	format string
	args   []any
	want   []any
}{
	{"1809 00 ff00 0000 0000", nil, []any{}},
	{"1806 01101000 ff00 00017000", nil, []any{}},
	{"1806 02201801 %w 3000 0600 ff00 00000000", []any{1}, []any{uint64(1)}},
	{"1800 080046 f003010330 %b 00 1001 %w", []any{3, 257}, []any{uint64(3), uint64(257)}},
	{"1808 10180300 %w ff00 00000000", []any{0x101}, []any{uint64(0x101)}},
	{"%w 0040 %x", []any{10, "New Title"}, []any{uint64(10), "New Title"}},
}

func TestQueries(t *testing.T) {
	for _, tC := range queries {
		t.Run(tC.format, func(t *testing.T) {
			data, err := netmdq.FormatQuery(tC.format, tC.args...)
			require.NoError(t, err)

			got, err := netmdq.ScanQuery(data, tC.format)
			require.NoError(t, err)

			td.Cmp(t, got, tC.want)
		})
	}
}

func TestBadFormat(t *testing.T) {
	_, err := netmdq.FormatQuery("%")
	require.ErrorIs(t, err, query.ErrBadFormat)

	_, err = netmdq.ScanQuery(nil, "%")
	require.ErrorIs(t, err, query.ErrBadFormat)
}

// The format cache is shared by every caller; hammer it from a few
// goroutines to make sure compiled formats are safe to share.
func TestConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				for _, tC := range queries {
					data, err := netmdq.FormatQuery(tC.format, tC.args...)
					if err != nil {
						t.Error(err)
						return
					}
					if _, err := netmdq.ScanQuery(data, tC.format); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkFormatQuery(b *testing.B) {
	j := 0
	for i := 0; i < b.N; i++ {
		_, err := netmdq.FormatQuery(queries[j].format, queries[j].args...)
		if err != nil {
			b.Fatal(err)
		}

		j++
		if j == len(queries) {
			j = 0
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	j := 0
	for i := 0; i < b.N; i++ {
		f, err := query.Compile(queries[j].format)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.Encode(queries[j].args...); err != nil {
			b.Fatal(err)
		}

		j++
		if j == len(queries) {
			j = 0
		}
	}
}
