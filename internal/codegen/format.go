package codegen

import "strconv"

// floatLiteral renders a float constant in the textual form the Signature
// Resolver/Text Renderer expect for an ldc.r4/ldc.r8 operand.
func floatLiteral(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
