// Package buhlmann implements the Bühlmann ZHL-16C tissue-loading model
// (spec components C1, C3, C4): the 16-compartment half-time/coefficient
// tables, Schreiner/linear-rate loading kinetics, and gradient-factor
// ceiling math. Grounded on the teacher dive-planner's buhlmann package,
// whose compartCoefSets table is reused verbatim; the scheduling logic
// that used to live alongside it (ascentCeiling, firstDecompStop,
// decompStopLengths, getNDL) has moved to package schedule so this
// package stays a pure tissue model with no notion of a dive's stop
// sequence.
package buhlmann

// CompartmentCount is the number of tissue compartments in every ZHL-16
// variant.
const CompartmentCount = 16

// CoefficientSet names a published ZHL-16 coefficient table. Only ZHL16C
// feeds the production scheduler; ZHL16A/B are retained so the C10
// alternative-model comparator has other published tables to reference.
type CoefficientSet int

const (
	ZHL16A CoefficientSet = iota
	ZHL16B
	ZHL16C
)

func (cs CoefficientSet) String() string {
	return [...]string{"ZH-L16A", "ZH-L16B", "ZH-L16C"}[cs]
}

// N2HalfTime returns a compartment's nitrogen half-time in minutes under
// the given coefficient set.
func N2HalfTime(cs CoefficientSet, compartment int) float64 {
	return coefficientTables[cs][compartment].n2HalfTime
}

// compartmentCoefficients holds the immutable kinetic constants for one
// compartment under one coefficient set.
type compartmentCoefficients struct {
	n2HalfTime float64
	n2A        float64
	n2B        float64
	heHalfTime float64
	heA        float64
	heB        float64
}

var coefficientTables = [3][CompartmentCount]compartmentCoefficients{
	ZHL16A: {
		{n2HalfTime: 4.0, n2A: 1.2599, n2B: 0.5050, heHalfTime: 1.5, heA: 1.7435, heB: 0.1911},
		{n2HalfTime: 8.0, n2A: 1.0000, n2B: 0.6514, heHalfTime: 3.0, heA: 1.3838, heB: 0.4295},
		{n2HalfTime: 12.5, n2A: 0.8618, n2B: 0.7222, heHalfTime: 4.7, heA: 1.1925, heB: 0.5446},
		{n2HalfTime: 18.5, n2A: 0.7562, n2B: 0.7725, heHalfTime: 7.0, heA: 1.0465, heB: 0.6265},
		{n2HalfTime: 27.0, n2A: 0.6667, n2B: 0.8125, heHalfTime: 10.2, heA: 0.9226, heB: 0.6917},
		{n2HalfTime: 38.3, n2A: 0.5933, n2B: 0.8434, heHalfTime: 14.5, heA: 0.8211, heB: 0.7420},
		{n2HalfTime: 54.3, n2A: 0.5282, n2B: 0.8693, heHalfTime: 20.5, heA: 0.7309, heB: 0.7841},
		{n2HalfTime: 77.0, n2A: 0.4701, n2B: 0.8910, heHalfTime: 29.1, heA: 0.6506, heB: 0.8195},
		{n2HalfTime: 109.0, n2A: 0.4187, n2B: 0.9092, heHalfTime: 41.1, heA: 0.5794, heB: 0.8491},
		{n2HalfTime: 146.0, n2A: 0.3798, n2B: 0.9222, heHalfTime: 55.1, heA: 0.5256, heB: 0.8703},
		{n2HalfTime: 187.0, n2A: 0.3497, n2B: 0.9319, heHalfTime: 70.6, heA: 0.4840, heB: 0.8860},
		{n2HalfTime: 239.0, n2A: 0.3223, n2B: 0.9403, heHalfTime: 90.2, heA: 0.4460, heB: 0.8997},
		{n2HalfTime: 305.0, n2A: 0.2971, n2B: 0.9477, heHalfTime: 115.1, heA: 0.4112, heB: 0.9118},
		{n2HalfTime: 390.0, n2A: 0.2737, n2B: 0.9544, heHalfTime: 147.2, heA: 0.3788, heB: 0.9226},
		{n2HalfTime: 498.0, n2A: 0.2523, n2B: 0.9602, heHalfTime: 187.9, heA: 0.3492, heB: 0.9321},
		{n2HalfTime: 635.0, n2A: 0.2327, n2B: 0.9653, heHalfTime: 239.6, heA: 0.3220, heB: 0.9404},
	},
	ZHL16B: {
		{n2HalfTime: 4.0, n2A: 1.2599, n2B: 0.5240, heHalfTime: 1.51, heA: 1.6189, heB: 0.4245},
		{n2HalfTime: 8.0, n2A: 1.0000, n2B: 0.6514, heHalfTime: 3.02, heA: 1.3830, heB: 0.5747},
		{n2HalfTime: 12.5, n2A: 0.8618, n2B: 0.7222, heHalfTime: 4.72, heA: 1.1919, heB: 0.6527},
		{n2HalfTime: 18.5, n2A: 0.7562, n2B: 0.7825, heHalfTime: 6.99, heA: 1.0458, heB: 0.7223},
		{n2HalfTime: 27.0, n2A: 0.6667, n2B: 0.8126, heHalfTime: 10.21, heA: 0.9220, heB: 0.7582},
		{n2HalfTime: 38.3, n2A: 0.5505, n2B: 0.8434, heHalfTime: 14.48, heA: 0.8205, heB: 0.7957},
		{n2HalfTime: 54.3, n2A: 0.4858, n2B: 0.8693, heHalfTime: 20.53, heA: 0.7305, heB: 0.8279},
		{n2HalfTime: 77.0, n2A: 0.4443, n2B: 0.8910, heHalfTime: 29.11, heA: 0.6502, heB: 0.8553},
		{n2HalfTime: 109.0, n2A: 0.4187, n2B: 0.9092, heHalfTime: 41.20, heA: 0.5950, heB: 0.8757},
		{n2HalfTime: 146.0, n2A: 0.3798, n2B: 0.9222, heHalfTime: 55.19, heA: 0.5545, heB: 0.8903},
		{n2HalfTime: 187.0, n2A: 0.3497, n2B: 0.9319, heHalfTime: 70.69, heA: 0.5333, heB: 0.8997},
		{n2HalfTime: 239.0, n2A: 0.3223, n2B: 0.9403, heHalfTime: 90.34, heA: 0.5189, heB: 0.9073},
		{n2HalfTime: 305.0, n2A: 0.2828, n2B: 0.9477, heHalfTime: 115.29, heA: 0.5181, heB: 0.9122},
		{n2HalfTime: 390.0, n2A: 0.2737, n2B: 0.9544, heHalfTime: 147.42, heA: 0.5176, heB: 0.9171},
		{n2HalfTime: 498.0, n2A: 0.2523, n2B: 0.9602, heHalfTime: 188.24, heA: 0.5172, heB: 0.9217},
		{n2HalfTime: 635.0, n2A: 0.2327, n2B: 0.9653, heHalfTime: 240.03, heA: 0.5119, heB: 0.9267},
	},
	ZHL16C: {
		{n2HalfTime: 4.0, n2A: 1.2599, n2B: 0.5240, heHalfTime: 1.51, heA: 1.6189, heB: 0.4245},
		{n2HalfTime: 8.0, n2A: 1.0000, n2B: 0.6514, heHalfTime: 3.02, heA: 1.3830, heB: 0.5747},
		{n2HalfTime: 12.5, n2A: 0.8618, n2B: 0.7222, heHalfTime: 4.72, heA: 1.1919, heB: 0.6527},
		{n2HalfTime: 18.5, n2A: 0.7562, n2B: 0.7825, heHalfTime: 6.99, heA: 1.0458, heB: 0.7223},
		{n2HalfTime: 27.0, n2A: 0.6667, n2B: 0.8126, heHalfTime: 10.21, heA: 0.9220, heB: 0.7582},
		{n2HalfTime: 38.3, n2A: 0.5600, n2B: 0.8434, heHalfTime: 14.48, heA: 0.8205, heB: 0.7957},
		{n2HalfTime: 54.3, n2A: 0.4947, n2B: 0.8693, heHalfTime: 20.53, heA: 0.7305, heB: 0.8279},
		{n2HalfTime: 77.0, n2A: 0.4500, n2B: 0.8910, heHalfTime: 29.11, heA: 0.6502, heB: 0.8553},
		{n2HalfTime: 109.0, n2A: 0.4187, n2B: 0.9092, heHalfTime: 41.20, heA: 0.5950, heB: 0.8757},
		{n2HalfTime: 146.0, n2A: 0.3798, n2B: 0.9222, heHalfTime: 55.19, heA: 0.5545, heB: 0.8903},
		{n2HalfTime: 187.0, n2A: 0.3497, n2B: 0.9319, heHalfTime: 70.69, heA: 0.5333, heB: 0.8997},
		{n2HalfTime: 239.0, n2A: 0.3223, n2B: 0.9403, heHalfTime: 90.34, heA: 0.5189, heB: 0.9073},
		{n2HalfTime: 305.0, n2A: 0.2850, n2B: 0.9477, heHalfTime: 115.29, heA: 0.5181, heB: 0.9122},
		{n2HalfTime: 390.0, n2A: 0.2737, n2B: 0.9544, heHalfTime: 147.42, heA: 0.5176, heB: 0.9171},
		{n2HalfTime: 498.0, n2A: 0.2523, n2B: 0.9602, heHalfTime: 188.24, heA: 0.5172, heB: 0.9217},
		{n2HalfTime: 635.0, n2A: 0.2327, n2B: 0.9653, heHalfTime: 240.03, heA: 0.5119, heB: 0.9267},
	},
}
