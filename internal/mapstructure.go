package internal

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

func basicDecodeHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		unboxIfElementSliceHasSingleElement,
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		mapstructure.StringToURLHookFunc(),
		mapstructure.StringToBasicTypeHookFunc(),
	}
}

// DefaultDecodeHookFunc decodes request values (headers, query, url params),
// which arrive as string slices.
var DefaultDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(basicDecodeHooks()...)

// SplitSemicolonsDecodeHookFunc decodes environment values, where a slice is
// written as a semicolon separated string.
var SplitSemicolonsDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	append([]mapstructure.DecodeHookFunc{splitValueBySemicolonsIfTargetIsSlice}, basicDecodeHooks()...)...,
)

func unboxIfElementSliceHasSingleElement(from reflect.Value, to reflect.Value) (any, error) {
	// convert single value slice to value
	if from.Kind() == reflect.Slice && from.Len() == 1 {
		toType := to.Type()
		for toType.Kind() == reflect.Pointer {
			toType = toType.Elem()
		}
		if toType.Kind() != reflect.Slice {
			return from.Index(0).Interface(), nil
		}
	}
	return from.Interface(), nil
}

func splitValueBySemicolonsIfTargetIsSlice(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := data.(string)
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, ";"), nil
}
