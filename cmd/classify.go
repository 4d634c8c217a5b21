package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/BitPonyLLC/logohue/internal/image_matcher"
	"github.com/BitPonyLLC/logohue/pkg/cache"
	"github.com/BitPonyLLC/logohue/pkg/logocolor"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var classifyProminent bool
var classifyPixels []string

func init() {
	classifyCmd.Flags().BoolVarP(&classifyProminent, "prominent", "p", false, "also report the prominent shade of each image")
	classifyCmd.Flags().StringArrayVar(&classifyPixels, "pixel", nil, "classify a single R,G,B[,A] pixel (may be repeated)")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify [IMAGE...]",
	Short: "Classify the dominant color of one or more logo images or pixels",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(classifyPixels) == 0 {
			return fail(2, "nothing to classify: provide an image or --pixel")
		}

		c := classifier()

		for _, value := range classifyPixels {
			p, err := parsePixel(value)
			if err != nil {
				return fail(2, "invalid pixel %q: %w", value, err)
			}
			cmd.Printf("%s = %s\n", value, c.ClassifyPixel(p))
		}

		resultCache, err := openCache()
		if err != nil {
			log.Warn().Err(err).Msg("continuing without cache")
			resultCache = nil
		}

		for _, arg := range args {
			entry, err := classifyFile(arg, c, resultCache)
			if err != nil {
				return err
			}

			if entry.Prominent == "" {
				cmd.Printf("%s = %s\n", arg, entry.Category)
			} else {
				cmd.Printf("%s = %s #%s\n", arg, entry.Category, entry.Prominent)
			}
		}

		if resultCache != nil {
			err = resultCache.Save()
			if err != nil {
				log.Warn().Err(err).Msg("unable to save cache")
			}
		}

		return nil
	},
}

func classifyFile(pathname string, c logocolor.Classifier, resultCache *cache.Cache) (cache.Entry, error) {
	logo, err := image_matcher.Load(pathname)
	if err != nil {
		return cache.Entry{}, fail(11, err)
	}

	var key string
	if resultCache != nil {
		key = cache.Key(logo.Data, c)
		if hit, ok := resultCache.Get(key); ok && (hit.Prominent != "" || !classifyProminent) {
			log.Debug().Str("path", pathname).Msg("cached")
			if !classifyProminent {
				hit.Prominent = ""
			}
			return hit, nil
		}
	}

	category, err := c.ClassifyImage(image_matcher.PixelsOf(logo.Image))
	if err != nil {
		return cache.Entry{}, fail(12, "can't classify %s: %w", pathname, err)
	}

	entry := cache.Entry{Category: category}
	if classifyProminent {
		entry.Prominent, err = image_matcher.ProminentColorOf(logo.Image)
		if err != nil {
			log.Debug().Err(err).Str("path", pathname).Msg("no prominent color")
		}
	}

	if resultCache != nil {
		resultCache.Put(key, entry)
	}

	return entry, nil
}

func parsePixel(value string) (logocolor.Pixel, error) {
	fields := strings.Split(value, ",")
	channels := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.New("channels must be whole numbers")
		}
		channels[i] = v
	}

	return logocolor.NewPixel(channels...)
}
