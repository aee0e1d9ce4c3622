package tokens

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

var (
	yamlLineRegex = regexp.MustCompile(`line (\d+)`)

	fileValidatorOnce sync.Once
	fileValidateInst  *validator.Validate
)

// tableFile mirrors the YAML layout of a token file. Sections left out of the
// file keep their built-in values; a scale or alias present in the file
// replaces the built-in entry of the same name entirely.
type tableFile struct {
	Colors      map[string]map[int]string `yaml:"colors" validate:"omitempty,dive,min=1,dive,required"`
	Semantic    map[string]semanticFile   `yaml:"semantic" validate:"omitempty,dive"`
	Spacing     []sizeFile                `yaml:"spacing" validate:"omitempty,dive"`
	Typography  []sizeFile                `yaml:"typography" validate:"omitempty,dive"`
	Shadows     []shadowFile              `yaml:"shadows" validate:"omitempty,dive"`
	Breakpoints []breakpointFile          `yaml:"breakpoints" validate:"omitempty,dive"`
}

type semanticFile struct {
	Light string `yaml:"light" validate:"required"`
	Dark  string `yaml:"dark" validate:"required"`
}

type sizeFile struct {
	Key string  `yaml:"key" validate:"required"`
	Px  float64 `yaml:"px" validate:"gte=0"`
}

type shadowFile struct {
	Key    string            `yaml:"key" validate:"required"`
	Layers []shadowLayerFile `yaml:"layers" validate:"omitempty,dive"`
}

type shadowLayerFile struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Blur   float64 `yaml:"blur" validate:"gte=0"`
	Spread float64 `yaml:"spread"`
	Color  string  `yaml:"color" validate:"required"`
	Inset  bool    `yaml:"inset"`
}

type breakpointFile struct {
	Name     string `yaml:"name" validate:"required"`
	MinWidth int    `yaml:"min_width" validate:"gte=0"`
}

// LoadFile reads a YAML token file and builds a Store from it.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse builds a Store from YAML token data. path is used for error messages.
func Parse(path string, data []byte) (*Store, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewParseError(path, extractLine(err), err)
	}

	if err := fileValidator().Struct(&file); err != nil {
		return nil, convertValidationError(err)
	}

	tables, err := file.toTables()
	if err != nil {
		return nil, err
	}
	return New(tables)
}

func (f tableFile) toTables() (Tables, error) {
	tables := DefaultTables()

	for name, shades := range f.Colors {
		cs := make(ColorScale, len(shades))
		for shade, value := range shades {
			cs[Shade(shade)] = value
		}
		tables.Colors[name] = cs
	}

	for alias, entry := range f.Semantic {
		light, err := ParseColorRef(entry.Light)
		if err != nil {
			return Tables{}, apperrors.NewValidationError("semantic."+alias+".light", err.Error(), err)
		}
		dark, err := ParseColorRef(entry.Dark)
		if err != nil {
			return Tables{}, apperrors.NewValidationError("semantic."+alias+".dark", err.Error(), err)
		}
		tables.Semantic[alias] = SemanticColor{Light: light, Dark: dark}
	}

	if len(f.Spacing) > 0 {
		tables.Spacing = toSizes(f.Spacing)
	}
	if len(f.Typography) > 0 {
		tables.Typography = toSizes(f.Typography)
	}

	if len(f.Shadows) > 0 {
		tables.Shadows = make([]ShadowToken, len(f.Shadows))
		for i, s := range f.Shadows {
			layers := make(Shadow, len(s.Layers))
			for j, l := range s.Layers {
				layers[j] = ShadowLayer{
					X:      Length(l.X),
					Y:      Length(l.Y),
					Blur:   Length(l.Blur),
					Spread: Length(l.Spread),
					Color:  l.Color,
					Inset:  l.Inset,
				}
			}
			tables.Shadows[i] = ShadowToken{Key: s.Key, Value: layers}
		}
	}

	if len(f.Breakpoints) > 0 {
		tables.Breakpoints = make(BreakpointTable, len(f.Breakpoints))
		for i, bp := range f.Breakpoints {
			tables.Breakpoints[i] = Breakpoint{Name: bp.Name, MinWidth: bp.MinWidth}
		}
	}

	return tables, nil
}

func toSizes(in []sizeFile) []Size {
	out := make([]Size, len(in))
	for i, s := range in {
		out[i] = Size{Key: s.Key, Value: Length(s.Px)}
	}
	return out
}

func fileValidator() *validator.Validate {
	fileValidatorOnce.Do(func() {
		fileValidateInst = validator.New()
	})
	return fileValidateInst
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := strings.ToLower(fe.Namespace())
		field = strings.TrimPrefix(field, "tablefile.")
		return apperrors.NewValidationError(field, fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), err)
	}
	return apperrors.NewValidationError("tokens", err.Error(), err)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
