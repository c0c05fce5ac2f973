package students

import (
	"encoding/json"
	"strings"
)

// Equipment can be one of:
//   - esteira
//   - bike
//   - elíptico
//   - corda
//   - escada
//   - livre
type Equipment string

const (
	EquipmentTreadmill  Equipment = "esteira"
	EquipmentBike       Equipment = "bike"
	EquipmentElliptical Equipment = "elíptico"
	EquipmentRope       Equipment = "corda"
	EquipmentStairs     Equipment = "escada"
	EquipmentFree       Equipment = "livre"
)

func (e Equipment) String() string {
	return string(e)
}

func (e Equipment) IsValid() bool {
	switch e {
	case EquipmentTreadmill,
		EquipmentBike,
		EquipmentElliptical,
		EquipmentRope,
		EquipmentStairs,
		EquipmentFree:
		return true
	default:
		return false
	}
}

// ParseEquipment is case-insensitive; unknown values give the empty Equipment.
func ParseEquipment(s string) Equipment {
	e := Equipment(strings.ToLower(strings.TrimSpace(s)))
	if !e.IsValid() {
		return ""
	}
	return e
}

// UnmarshalJSON never fails: unknown or non-string values decode to the empty Equipment.
func (e *Equipment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*e = ""
		return nil
	}
	*e = ParseEquipment(s)
	return nil
}

// Intensity can be one of:
//   - leve
//   - moderado
//   - intenso
type Intensity string

const (
	IntensityLight    Intensity = "leve"
	IntensityModerate Intensity = "moderado"
	IntensityIntense  Intensity = "intenso"
)

func (i Intensity) String() string {
	return string(i)
}

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLight, IntensityModerate, IntensityIntense:
		return true
	default:
		return false
	}
}

// ParseIntensity is case-insensitive; unknown values give the empty Intensity.
func ParseIntensity(s string) Intensity {
	i := Intensity(strings.ToLower(strings.TrimSpace(s)))
	if !i.IsValid() {
		return ""
	}
	return i
}

// UnmarshalJSON never fails: unknown or non-string values decode to the empty Intensity.
func (i *Intensity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*i = ""
		return nil
	}
	*i = ParseIntensity(s)
	return nil
}
