package preprocess_test

import (
	"testing"

	"github.com/okian/ctcpredict/internal/domain/frame"
	"github.com/okian/ctcpredict/internal/domain/preprocess"
	. "github.com/smartystreets/goconvey/convey"
)

var columns = []string{"index", "IDX", "Department", "Passing_Year_Of_PHD", "PHD_Specialization", "University_PHD"}

func batch() *frame.Frame {
	return frame.FromRecords(columns,
		frame.Record{
			"index":      frame.Int(0),
			"IDX":        frame.Int(0),
			"Department": frame.Text("HR"),
		},
		frame.Record{
			"index":               frame.Int(0),
			"IDX":                 frame.Int(0),
			"Department":          frame.Text("Analytics/BI"),
			"Passing_Year_Of_PHD": frame.Int(2012),
			"PHD_Specialization":  frame.Text("Statistics"),
			"University_PHD":      frame.Text("NA"),
		},
	)
}

// spy records what the next stage receives.
type spy struct {
	inner   preprocess.Transformer
	columns []string
	missing int
	fitted  bool
}

func (s *spy) Name() string { return "spy" }

func (s *spy) Fit(f *frame.Frame) error {
	s.fitted = true
	return s.inner.Fit(f)
}

func (s *spy) Transform(f *frame.Frame) *frame.Frame {
	s.columns = f.Columns()
	s.missing = f.MissingCount()
	return s.inner.Transform(f)
}

func TestColumnDropper(t *testing.T) {
	Convey("Given a column dropper", t, func() {
		b := batch()

		Convey("When the configured columns are present", func() {
			d := preprocess.NewColumnDropper("index", "IDX")
			out := d.Transform(b)

			Convey("Then none of them remain", func() {
				So(out.HasColumn("index"), ShouldBeFalse)
				So(out.HasColumn("IDX"), ShouldBeFalse)
			})

			Convey("And every other column is unchanged in value and order", func() {
				So(out.Columns(), ShouldResemble, columns[2:])
				So(out.Len(), ShouldEqual, b.Len())
				for i := 0; i < b.Len(); i++ {
					for _, c := range out.Columns() {
						want, _ := b.Cell(i, c)
						got, _ := out.Cell(i, c)
						So(got.Equal(want), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When a configured column is absent", func() {
			with := preprocess.NewColumnDropper("index", "nonexistent_field").Transform(b)
			without := preprocess.NewColumnDropper("index").Transform(b)

			Convey("Then the result equals dropping without it", func() {
				So(with.Equal(without), ShouldBeTrue)
			})
		})

		Convey("When only an absent column is configured", func() {
			out := preprocess.NewColumnDropper("nonexistent_field").Transform(b)

			Convey("Then the batch is identical to the input", func() {
				So(out.Equal(b), ShouldBeTrue)
			})
		})

		Convey("When the caller mutates the configuration slice", func() {
			cfg := []string{"index"}
			d := preprocess.NewColumnDropper(cfg...)
			cfg[0] = "Department"

			Convey("Then the dropper keeps its original configuration", func() {
				So(d.Columns(), ShouldResemble, []string{"index"})
				So(d.Transform(b).HasColumn("Department"), ShouldBeTrue)
			})
		})

		Convey("When fitting", func() {
			d := preprocess.NewColumnDropper("index")
			So(d.Fit(b), ShouldBeNil)
			So(d.Transform(b).Equal(preprocess.NewColumnDropper("index").Transform(b)), ShouldBeTrue)
		})
	})
}

func TestNaNFiller(t *testing.T) {
	Convey("Given a NaN filler with sentinel NA", t, func() {
		b := batch()
		n := preprocess.NewNaNFiller(frame.Text("NA"))
		out := n.Transform(b)

		Convey("Then no missing cells remain", func() {
			So(b.MissingCount(), ShouldEqual, 3)
			So(out.MissingCount(), ShouldEqual, 0)
		})

		Convey("And originally missing cells hold the sentinel", func() {
			v, _ := out.Cell(0, "Passing_Year_Of_PHD")
			So(v.Equal(frame.Text("NA")), ShouldBeTrue)
		})

		Convey("And originally present cells are unchanged", func() {
			v, _ := out.Cell(1, "Passing_Year_Of_PHD")
			So(v.Equal(frame.Int(2012)), ShouldBeTrue)
		})

		Convey("And applying it twice equals applying it once", func() {
			So(n.Transform(out).Equal(out), ShouldBeTrue)
		})

		Convey("And a batch without missing cells passes through", func() {
			So(n.Transform(out).Equal(out), ShouldBeTrue)
		})
	})

	Convey("Given a numeric sentinel", t, func() {
		out := preprocess.NewNaNFiller(frame.Int(0)).Transform(batch())
		v, _ := out.Cell(0, "PHD_Specialization")
		So(v.Equal(frame.Int(0)), ShouldBeTrue)
	})

	Convey("Given a missing sentinel", t, func() {
		n := preprocess.NewNaNFiller(frame.Missing())
		So(n.FillValue().Equal(preprocess.DefaultFillValue), ShouldBeTrue)
		So(n.Transform(batch()).MissingCount(), ShouldEqual, 0)
	})
}

func TestPipeline(t *testing.T) {
	Convey("Given a drop-then-fill pipeline", t, func() {
		filler := &spy{inner: preprocess.NewNaNFiller(frame.Text("NA"))}
		p := preprocess.NewPipeline(preprocess.NewColumnDropper("Passing_Year_Of_PHD"), filler)

		Convey("When transforming a batch whose dropped column has missing cells", func() {
			out := p.Transform(batch())

			Convey("Then the filler never sees the dropped column", func() {
				So(filler.columns, ShouldNotContain, "Passing_Year_Of_PHD")
				So(filler.missing, ShouldEqual, 2)
			})

			Convey("And the output is fully populated without the dropped column", func() {
				So(out.HasColumn("Passing_Year_Of_PHD"), ShouldBeFalse)
				So(out.MissingCount(), ShouldEqual, 0)
			})
		})

		Convey("When fitting", func() {
			So(p.Fit(batch()), ShouldBeNil)
			So(filler.fitted, ShouldBeTrue)
			So(filler.columns, ShouldNotContain, "Passing_Year_Of_PHD")
		})

		Convey("Then the steps run in declared order", func() {
			So(p.Steps(), ShouldResemble, []string{"column_dropper", "spy"})
		})
	})

	Convey("Given the reverse order", t, func() {
		p := preprocess.NewPipeline(preprocess.NewNaNFiller(frame.Text("NA")), preprocess.NewColumnDropper("Passing_Year_Of_PHD"))
		standard := preprocess.NewStandard([]string{"Passing_Year_Of_PHD"}, frame.Text("NA"))

		Convey("Then the final batch is the same", func() {
			So(p.Transform(batch()).Equal(standard.Transform(batch())), ShouldBeTrue)
			So(standard.Steps(), ShouldResemble, []string{"column_dropper", "nan_filler"})
		})
	})
}
