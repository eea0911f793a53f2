package palette

// BaseColors2699 are the base colors as of data version 2699 (21w10a).
var BaseColors2699 = BaseColors{
	1:  {127, 178, 56, 255},
	2:  {247, 233, 163, 255},
	3:  {199, 199, 199, 255},
	4:  {255, 0, 0, 255},
	5:  {160, 160, 255, 255},
	6:  {167, 167, 167, 255},
	7:  {0, 124, 0, 255},
	8:  {255, 255, 255, 255},
	9:  {164, 168, 184, 255},
	10: {151, 109, 77, 255},
	11: {112, 112, 112, 255},
	12: {64, 64, 255, 255},
	13: {143, 119, 72, 255},
	14: {255, 252, 245, 255},
	15: {216, 127, 51, 255},
	16: {178, 76, 216, 255},
	17: {102, 153, 216, 255},
	18: {229, 229, 51, 255},
	19: {127, 204, 25, 255},
	20: {242, 127, 165, 255},
	21: {76, 76, 76, 255},
	22: {153, 153, 153, 255},
	23: {76, 127, 153, 255},
	24: {127, 63, 178, 255},
	25: {51, 76, 178, 255},
	26: {102, 76, 51, 255},
	27: {102, 127, 51, 255},
	28: {153, 51, 51, 255},
	29: {25, 25, 25, 255},
	30: {250, 238, 77, 255},
	31: {92, 219, 213, 255},
	32: {74, 128, 255, 255},
	33: {0, 217, 58, 255},
	34: {129, 86, 49, 255},
	35: {112, 2, 0, 255},
	36: {209, 177, 161, 255},
	37: {159, 82, 36, 255},
	38: {149, 87, 108, 255},
	39: {112, 108, 138, 255},
	40: {186, 133, 36, 255},
	41: {103, 117, 53, 255},
	42: {160, 77, 78, 255},
	43: {57, 41, 35, 255},
	44: {135, 107, 98, 255},
	45: {87, 92, 92, 255},
	46: {122, 73, 88, 255},
	47: {76, 62, 92, 255},
	48: {76, 50, 35, 255},
	49: {76, 82, 42, 255},
	50: {142, 60, 46, 255},
	51: {37, 22, 16, 255},
	52: {189, 48, 49, 255},
	53: {148, 63, 97, 255},
	54: {92, 25, 29, 255},
	55: {22, 126, 134, 255},
	56: {58, 142, 140, 255},
	57: {86, 44, 62, 255},
	58: {20, 180, 133, 255},
	59: {100, 100, 100, 255},
	60: {216, 175, 147, 255},
	61: {127, 167, 150, 255},
}
