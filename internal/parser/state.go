package parser

import (
	"strconv"
)

type parserState int

const (
	stateSource parserState = iota
	stateArray
	stateObject
	stateTemplate
	stateParams
	stateMap
	statePair
	stateExpression
)

func (p parserState) String() string {
	switch p {
	case stateSource:
		return "source"
	case stateArray:
		return "array"
	case stateObject:
		return "object"
	case stateTemplate:
		return "template"
	case stateParams:
		return "template parameters"
	case stateMap:
		return "map"
	case statePair:
		return "pair"
	case stateExpression:
		return "expression"
	default:
		return strconv.FormatInt(int64(p), 10)
	}
}
