package codec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Field names of the encoded messages.
const (
	FieldTimelines = "timelines"
	FieldResource  = "resource"
	FieldIntervals = "intervals"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldState     = "state"
	FieldLabel     = "label"
	FieldSignals   = "signals"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

// ErrMalformed is returned when a message lacks a field or holds the wrong kind of value.
var ErrMalformed = errors.New("malformed message")

// EncodeDataset converts a dataset into a Struct.
func EncodeDataset(ds *machine.Dataset) (*structpb.Struct, error) {
	timelines := make([]any, 0)

	if ds != nil {
		for _, tl := range ds.Timelines {
			intervals := make([]any, len(tl.Intervals))

			for i, interval := range tl.Intervals {
				intervals[i] = map[string]any{
					FieldStart: interval.Start.UTC().Format(time.RFC3339Nano),
					FieldEnd:   interval.End.UTC().Format(time.RFC3339Nano),
					FieldState: interval.State.String(),
				}
			}

			timelines = append(timelines, map[string]any{
				FieldResource:  tl.Resource,
				FieldIntervals: intervals,
			})
		}
	}

	msg, err := structpb.NewStruct(map[string]any{FieldTimelines: timelines})
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	return msg, nil
}

// DecodeDataset converts a Struct produced by EncodeDataset back into a dataset.
func DecodeDataset(msg *structpb.Struct) (*machine.Dataset, error) {
	list, err := listField(msg, FieldTimelines)
	if err != nil {
		return nil, err
	}

	ds := &machine.Dataset{
		Timelines: make([]machine.Timeline, 0, len(list)),
	}

	for i, value := range list {
		tl, err := decodeTimeline(value.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("timeline %d: %w", i, err)
		}

		ds.Timelines = append(ds.Timelines, tl)
	}

	return ds, nil
}

func decodeTimeline(msg *structpb.Struct) (machine.Timeline, error) {
	resource, err := stringField(msg, FieldResource)
	if err != nil {
		return machine.Timeline{}, err
	}

	list, err := listField(msg, FieldIntervals)
	if err != nil {
		return machine.Timeline{}, err
	}

	tl := machine.Timeline{
		Resource:  resource,
		Intervals: make([]machine.Interval, len(list)),
	}

	for i, value := range list {
		interval, err := decodeInterval(resource, value.GetStructValue())
		if err != nil {
			return machine.Timeline{}, fmt.Errorf("interval %d: %w", i, err)
		}

		tl.Intervals[i] = interval
	}

	return tl, nil
}

func decodeInterval(resource string, msg *structpb.Struct) (machine.Interval, error) {
	start, err := timeField(msg, FieldStart)
	if err != nil {
		return machine.Interval{}, err
	}

	end, err := timeField(msg, FieldEnd)
	if err != nil {
		return machine.Interval{}, err
	}

	name, err := stringField(msg, FieldState)
	if err != nil {
		return machine.Interval{}, err
	}

	state, err := machine.ParseState(name)
	if err != nil {
		return machine.Interval{}, err
	}

	return machine.Interval{
		Resource: resource,
		Start:    start,
		End:      end,
		State:    state,
	}, nil
}

// EncodeState converts a classification result into a Struct.
func EncodeState(state machine.State) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldState: structpb.NewStringValue(state.String()),
			FieldLabel: structpb.NewStringValue(state.Label()),
		},
	}
}

// DecodeState reads the state of a Struct produced by EncodeState.
func DecodeState(msg *structpb.Struct) (machine.State, error) {
	name, err := stringField(msg, FieldState)
	if err != nil {
		return machine.StateEmpty, err
	}

	return machine.ParseState(name)
}

// EncodeSignals wraps raw signal levels into a classification request.
func EncodeSignals(levels map[string]int) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(levels))
	for name, level := range levels {
		fields[name] = structpb.NewNumberValue(float64(level))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldSignals: structpb.NewStructValue(&structpb.Struct{Fields: fields}),
		},
	}
}

// DecodeRow validates the signals of a classification request into a Row.
// Numbers, booleans and strings are accepted; null counts as missing.
func DecodeRow(msg *structpb.Struct) (machine.Row, error) {
	value, ok := msg.GetFields()[FieldSignals]
	if !ok || value.GetStructValue() == nil {
		return machine.Row{}, fmt.Errorf("%w: %q must be an object", ErrMalformed, FieldSignals)
	}

	signals := value.GetStructValue().GetFields()
	fields := make(map[string]string, len(signals))

	for name, v := range signals {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			fields[name] = strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
		case *structpb.Value_BoolValue:
			fields[name] = strconv.FormatBool(kind.BoolValue)
		case *structpb.Value_StringValue:
			fields[name] = kind.StringValue
		case *structpb.Value_NullValue:
			fields[name] = ""
		default:
			return machine.Row{}, &machine.InvalidSignalError{Signal: machine.Signal(name), Value: v.String()}
		}
	}

	return machine.ParseRow("", 0, fields)
}

// EncodeRange builds a timeline request for [from, to].
func EncodeRange(from, to time.Time) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldStartDate: structpb.NewStringValue(from.Format(time.DateOnly)),
			FieldEndDate:   structpb.NewStringValue(to.Format(time.DateOnly)),
		},
	}
}

// DecodeRange reads the dates of a timeline request.
func DecodeRange(msg *structpb.Struct) (from, to time.Time, err error) {
	if from, err = dateField(msg, FieldStartDate); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if to, err = dateField(msg, FieldEndDate); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to, nil
}

func stringField(msg *structpb.Struct, name string) (string, error) {
	value, ok := msg.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformed, name)
	}

	kind, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", ErrMalformed, name)
	}

	return kind.StringValue, nil
}

func listField(msg *structpb.Struct, name string) ([]*structpb.Value, error) {
	value, ok := msg.GetFields()[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformed, name)
	}

	list := value.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %q must be a list", ErrMalformed, name)
	}

	return list.GetValues(), nil
}

func timeField(msg *structpb.Struct, name string) (time.Time, error) {
	raw, err := stringField(msg, name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrMalformed, name, err)
	}

	return t, nil
}

func dateField(msg *structpb.Struct, name string) (time.Time, error) {
	raw, err := stringField(msg, name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrMalformed, name, err)
	}

	return t, nil
}
