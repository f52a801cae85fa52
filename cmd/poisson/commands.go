package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/setanarut/poisson"
	"github.com/setanarut/poisson/utils"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

// matteFlags selects the region either from a matte image or from a polygon.
type matteFlags struct {
	image       string
	polygon     string
	polygonFile string
}

func (f *matteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.image, "matte", "", "matte image, red pixels are pasted")
	cmd.Flags().StringVar(&f.polygon, "polygon", "", `region outline as "x,y x,y ..." in source coordinates`)
	cmd.Flags().StringVar(&f.polygonFile, "polygon-file", "", "file with one x,y vertex per line")
	cmd.MarkFlagsMutuallyExclusive("matte", "polygon", "polygon-file")
	cmd.MarkFlagsOneRequired("matte", "polygon", "polygon-file")
}

func (f *matteFlags) polygonValue() (poisson.Polygon, error) {
	if f.polygon != "" {
		return utils.ParsePolygon(f.polygon)
	}
	file, err := os.Open(f.polygonFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return utils.ReadPolygon(file)
}

func (f *matteFlags) matte() (poisson.Matte, error) {
	if f.image != "" {
		r, err := utils.ReadRaster(f.image)
		if err != nil {
			return nil, err
		}
		return poisson.RasterMatte{Raster: r}, nil
	}
	poly, err := f.polygonValue()
	if err != nil {
		return nil, err
	}
	return poly, nil
}

func parseGradients(s string) (poisson.GradientMode, error) {
	switch s {
	case "mixed":
		return poisson.MixedGradients, nil
	case "source":
		return poisson.SourceGradients, nil
	default:
		return 0, fmt.Errorf("unknown gradient mode %q (want mixed or source)", s)
	}
}

func newPasteCmd() *cobra.Command {
	var (
		mf            matteFlags
		srcPath       string
		dstPath       string
		outPath       string
		offX, offY    int
		gradients     string
		clip          bool
		serial        bool
		paletteK      int
		paletteMethod string
	)
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Blend a source region into a target image",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := poisson.DefaultOptions()
			mode, err := parseGradients(gradients)
			if err != nil {
				return err
			}
			opt.Gradients = mode
			opt.Parallel = !serial
			if clip {
				opt.Placement = poisson.PlacementClip
			}

			src, err := utils.ReadRaster(srcPath)
			if err != nil {
				return err
			}
			dst, err := utils.ReadRaster(dstPath)
			if err != nil {
				return err
			}
			m, err := mf.matte()
			if err != nil {
				return err
			}

			out, err := poisson.Composite(src, m, dst, offX, offY, opt)
			if err != nil {
				if errors.Is(err, poisson.ErrOutOfBounds) && !clip {
					slog.Info("region does not fit the target, retry with --clip to drop the overhang")
				}
				return err
			}
			if err := utils.SaveRaster(out, outPath); err != nil {
				return err
			}
			slog.Info("composite written", "path", outPath, "gradients", opt.Gradients, "placement", opt.Placement)

			if paletteK > 0 {
				method, err := utils.ParsePaletteMethod(paletteMethod)
				if err != nil {
					return err
				}
				off := image.Pt(offX, offY)
				region, err := poisson.PlaceRegion(src, m, dst, off, opt.Placement)
				if err != nil {
					return err
				}
				reportPalette(src, out, region, off, paletteK, method)
			}
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVarP(&srcPath, "source", "s", "", "source image")
	cmd.Flags().StringVarP(&dstPath, "target", "t", "", "target image")
	cmd.Flags().StringVarP(&outPath, "out", "o", "composite.png", "output PNG")
	cmd.Flags().IntVarP(&offX, "offset-x", "x", 0, "horizontal position of the source origin in the target")
	cmd.Flags().IntVarP(&offY, "offset-y", "y", 0, "vertical position of the source origin in the target")
	cmd.Flags().StringVar(&gradients, "gradients", "mixed", "guidance field: mixed or source")
	cmd.Flags().BoolVar(&clip, "clip", false, "drop region pixels that fall outside the target instead of failing")
	cmd.Flags().BoolVar(&serial, "serial", false, "solve colour channels one after another")
	cmd.Flags().IntVar(&paletteK, "palette", 0, "log k region colours before and after blending")
	cmd.Flags().StringVar(&paletteMethod, "palette-method", "dominantcolor", "palette extraction: dominantcolor or kmeans")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("target")
	return cmd
}

// reportPalette logs how blending moved the dominant colours of the placed
// region, so clipped pixels count on neither side.
func reportPalette(src, out *poisson.Raster, region *poisson.Region, off image.Point, k int, method utils.PaletteMethod) {
	before := utils.ExtractRegionPalette(src, region, image.Point{}, k, method)
	after := utils.ExtractRegionPalette(out, region, off, k, method)
	shift := utils.PaletteShift(before, after)
	for i := range shift {
		slog.Info("palette",
			"rank", i,
			"source", before[i].Hex(),
			"composite", after[i].Hex(),
			"deltaE", fmt.Sprintf("%.3f", shift[i]))
	}
}

func newMatteCmd() *cobra.Command {
	var (
		polygon     string
		polygonFile string
		refPath     string
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "matte",
		Short: "Rasterize a polygon into a red-on-black matte",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf := matteFlags{polygon: polygon, polygonFile: polygonFile}
			poly, err := mf.polygonValue()
			if err != nil {
				return err
			}
			ref, err := utils.ReadImage(refPath)
			if err != nil {
				return err
			}
			b := ref.Bounds()
			if err := utils.SaveRaster(poisson.CreateMatte(b.Dx(), b.Dy(), poly), outPath); err != nil {
				return err
			}
			slog.Info("matte written", "path", outPath, "width", b.Dx(), "height", b.Dy())
			return nil
		},
	}
	cmd.Flags().StringVar(&polygon, "polygon", "", `region outline as "x,y x,y ..."`)
	cmd.Flags().StringVar(&polygonFile, "polygon-file", "", "file with one x,y vertex per line")
	cmd.Flags().StringVarP(&refPath, "source", "s", "", "image whose size the matte takes")
	cmd.Flags().StringVarP(&outPath, "out", "o", "matte.png", "output PNG")
	cmd.MarkFlagsMutuallyExclusive("polygon", "polygon-file")
	cmd.MarkFlagsOneRequired("polygon", "polygon-file")
	cmd.MarkFlagRequired("source")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var (
		mf         matteFlags
		srcPath    string
		dstPath    string
		outPath    string
		cutoutPath string
		offX, offY int
		opacity    float64
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Plain alpha paste of the region, for comparison with the blended result",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := utils.ReadRaster(srcPath)
			if err != nil {
				return err
			}
			dst, err := utils.ReadRaster(dstPath)
			if err != nil {
				return err
			}
			m, err := mf.matte()
			if err != nil {
				return err
			}
			region := poisson.IndexRegion(m, src.W, src.H)
			if region.N == 0 {
				return fmt.Errorf("preview: empty matte: %w", poisson.ErrInvalidRegion)
			}

			overlay := naivePaste(src, region, dst, image.Pt(offX, offY), opacity)
			if err := utils.SaveImage(overlay, outPath); err != nil {
				return err
			}
			slog.Info("preview written", "path", outPath, "opacity", opacity)

			if cutoutPath != "" {
				if err := utils.SaveRaster(cutout(src, region), cutoutPath); err != nil {
					return err
				}
				slog.Info("cutout written", "path", cutoutPath)
			}
			return nil
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVarP(&srcPath, "source", "s", "", "source image")
	cmd.Flags().StringVarP(&dstPath, "target", "t", "", "target image")
	cmd.Flags().StringVarP(&outPath, "out", "o", "preview.png", "output PNG")
	cmd.Flags().StringVar(&cutoutPath, "cutout", "", "also write the region on a white canvas")
	cmd.Flags().IntVarP(&offX, "offset-x", "x", 0, "horizontal position of the source origin in the target")
	cmd.Flags().IntVarP(&offY, "offset-y", "y", 0, "vertical position of the source origin in the target")
	cmd.Flags().Float64Var(&opacity, "opacity", 1.0, "opacity of the pasted region")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("target")
	return cmd
}

// naivePaste composites the region over dst with plain source-over blending.
// Parts of the region outside dst are dropped by draw.
func naivePaste(src *poisson.Raster, region *poisson.Region, dst *poisson.Raster, off image.Point, opacity float64) *image.NRGBA {
	faded := poisson.ApplyOp(src, poisson.ChangeOpacity, opacity).Image()
	mask := image.NewAlpha(faded.Bounds())
	region.Each(func(_, x, y int) {
		mask.Pix[mask.PixOffset(x, y)] = 0xFF
	})
	out := dst.Image()
	r := faded.Bounds().Add(off)
	draw.DrawMask(out, r, faded, image.Point{}, mask, image.Point{}, draw.Over)
	return out
}

// cutout returns the region pixels on a white canvas of the source size.
func cutout(src *poisson.Raster, region *poisson.Region) *poisson.Raster {
	out := poisson.ApplyOp(src, poisson.ClearToWhite, 0)
	region.Each(func(_, x, y int) {
		out.Set(x, y, src.At(x, y))
	})
	return out
}
