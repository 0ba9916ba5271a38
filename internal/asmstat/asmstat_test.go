package asmstat

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func Test_Nx(t *testing.T) {
	type args struct {
		sorted []int
		total  int
		x      float64
	}
	tests := []struct {
		name    string
		args    args
		want    int
		wantErr bool
	}{
		{
			"n50 of the protocol scenario",
			args{[]int{1000, 800, 600, 400, 200}, 3000, 50},
			800, // cumulative 1000, 1800 >= 1500
			false,
		},
		{
			"n90 of the protocol scenario",
			args{[]int{1000, 800, 600, 400, 200}, 3000, 90},
			400, // cumulative reaches 2800 >= 2700 at length 400
			false,
		},
		{
			"n100 is the minimum contig length",
			args{[]int{1000, 800, 600, 400, 200}, 3000, 100},
			200,
			false,
		},
		{
			"n50 reaching the target exactly",
			args{[]int{100, 90, 80, 70, 60}, 400, 50},
			80, // cumulative 100, 190, 270; the target 200 is first reached at 80
			false,
		},
		{
			"exhausted walk returns zero",
			args{[]int{10, 10}, 100, 50}, // total deliberately larger than the list sum
			0,
			false,
		},
		{
			"zero percent is a contract violation",
			args{[]int{10}, 10, 0},
			0,
			true,
		},
		{
			"negative percent is a contract violation",
			args{[]int{10}, 10, -5},
			0,
			true,
		},
		{
			"above one hundred is a contract violation",
			args{[]int{10}, 10, 100.5},
			0,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nx(tt.args.sorted, tt.args.total, tt.args.x)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Nx() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Nx() = %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_NxMonotonic(t *testing.T) {
	sorted := []int{100, 90, 80, 70, 60}
	total := 400

	last := int(^uint(0) >> 1)
	for _, x := range []float64{50, 75, 90} {
		v, err := Nx(sorted, total, x)
		if err != nil {
			t.Fatalf("Nx(%v) error = %v", x, err)
		}
		if v > last {
			t.Errorf("Nx(%v) = %d: greater than the value at the lower percentage %d", x, v, last)
		}
		last = v
	}
}

func Test_New(t *testing.T) {
	s, err := New([]int{200, 1000, 600, 400, 800}, "scenario.fa", DefaultOptions())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.NContigs != 5 {
		t.Errorf("NContigs = %d, want 5", s.NContigs)
	}
	if s.TotalLength != 3000 {
		t.Errorf("TotalLength = %d, want 3000", s.TotalLength)
	}
	if s.MaxContig != 1000 || s.MinContig != 200 {
		t.Errorf("extrema = %d/%d, want 1000/200", s.MaxContig, s.MinContig)
	}
	if s.MeanContig != 600 {
		t.Errorf("MeanContig = %v, want 600", s.MeanContig)
	}
	if s.MedianContig != 600 {
		t.Errorf("MedianContig = %v, want 600", s.MedianContig)
	}
	if s.Nx[50] != 800 {
		t.Errorf("N50 = %d, want 800", s.Nx[50])
	}
	if s.Nx[90] != 400 {
		t.Errorf("N90 = %d, want 400", s.Nx[90])
	}
	if s.LongestNSum != 3000 {
		// fewer than ten contigs: the longest-10 sum is the whole assembly
		t.Errorf("LongestNSum = %d, want 3000", s.LongestNSum)
	}
	if s.ThresholdCounts[500] != 3 || s.ThresholdCounts[1000] != 1 || s.ThresholdCounts[5000] != 0 {
		t.Errorf("ThresholdCounts = %v", s.ThresholdCounts)
	}
}

func Test_NewEmpty(t *testing.T) {
	if _, err := New(nil, "empty.fa", DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Errorf("New(nil) error = %v, want ErrNoData", err)
	}
}

func Test_NewInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero threshold", Options{SizeThresholds: []int{0}, NxPercentages: []float64{50}, LongestN: 10}},
		{"nx percentage above 100", Options{NxPercentages: []float64{101}, LongestN: 10}},
		{"non-positive longest-n", Options{NxPercentages: []float64{50}, LongestN: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]int{100}, "x.fa", tt.opts)
			if err == nil {
				t.Error("New() expected a contract error")
			}
			if errors.Is(err, ErrNoData) {
				t.Error("New() contract violations must not resolve to ErrNoData")
			}
		})
	}
}

func Test_NewDeterministic(t *testing.T) {
	lengths := []int{512, 2048, 128, 1024, 64, 4096}
	a, err := New(lengths, "a.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(lengths, "a.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Map(), b.Map()) {
		t.Errorf("identical input produced different statistics:\n%v\n%v", a.Map(), b.Map())
	}
}

func Test_ThresholdCountsMonotonic(t *testing.T) {
	s, err := New([]int{120000, 60000, 12000, 6000, 1200, 600, 120}, "x.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	last := s.NContigs
	for _, threshold := range opts.SizeThresholds {
		c := s.ThresholdCounts[threshold]
		if c > last {
			t.Errorf("count(>=%d) = %d: greater than the count at the lower threshold %d", threshold, c, last)
		}
		last = c
	}
}

func Test_LongestNSumPartial(t *testing.T) {
	lengths := make([]int, 0, 15)
	for i := 1; i <= 15; i++ {
		lengths = append(lengths, i*100)
	}
	s, err := New(lengths, "x.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// the ten longest are 600..1500
	want := 0
	for i := 6; i <= 15; i++ {
		want += i * 100
	}
	if s.LongestNSum != want {
		t.Errorf("LongestNSum = %d, want %d", s.LongestNSum, want)
	}
}

func Test_MedianEven(t *testing.T) {
	s, err := New([]int{100, 200, 300, 400}, "x.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if s.MedianContig != 250 {
		t.Errorf("MedianContig = %v, want 250", s.MedianContig)
	}
}

func Test_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assembly.fa")
	content := ">contig_1 flag=1\nACGTACGTAC\n>contig_2\nACGT\n>contig_3\nAC"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := FromFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if s.NContigs != 3 || s.TotalLength != 16 {
		t.Errorf("FromFile() = %d contigs / %d bp, want 3 / 16", s.NContigs, s.TotalLength)
	}
	if s.SourcePath != path {
		t.Errorf("SourcePath = %q, want %q", s.SourcePath, path)
	}
}

func Test_FromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "never_written.fa"), DefaultOptions())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("FromFile(missing) error = %v, want ErrNoData", err)
	}
}

func Test_FromFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.fa")
	if err := os.WriteFile(path, []byte(">only_header\n>another\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(path, DefaultOptions())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("FromFile(headers only) error = %v, want ErrNoData", err)
	}
}

func Test_Map(t *testing.T) {
	s, err := New([]int{1000, 800, 600, 400, 200}, "scenario.fa", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	m := s.Map()
	want := map[string]float64{
		"total_length":   3000,
		"n_contigs":      5,
		"n50":            800,
		"n75":            600,
		"n90":            400,
		"contigs_1kb+":   1,
		"contigs_500bp+": 3,
		"longest_10_sum": 3000,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("Map()[%q] = %v, want %v", k, m[k], v)
		}
	}

	names := DefaultOptions().MetricNames()
	for _, name := range names {
		if _, ok := m[name]; !ok {
			t.Errorf("Map() missing metric %q named by MetricNames()", name)
		}
	}
	if len(m) != len(names) {
		t.Errorf("Map() has %d metrics, MetricNames() names %d", len(m), len(names))
	}
}
