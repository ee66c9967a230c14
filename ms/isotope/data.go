package isotope

// defaultVersion identifies the bundled isotopic dataset.
const defaultVersion = "CIAAW-2021"

// Bundled natural abundances and atomic masses. Masses in Da, abundances
// normalized per element.
var defaultData = map[string][]Isotope{
	"H": {
		{Mass: 1.00782503207, Abundance: 0.999885},
		{Mass: 2.01410177780, Abundance: 0.000115},
	},
	"B": {
		{Mass: 11.00930540, Abundance: 0.801},
		{Mass: 10.01293700, Abundance: 0.199},
	},
	"C": {
		{Mass: 12.00000000000, Abundance: 0.9893},
		{Mass: 13.00335483780, Abundance: 0.0107},
	},
	"N": {
		{Mass: 14.00307400480, Abundance: 0.99636},
		{Mass: 15.00010889820, Abundance: 0.00364},
	},
	"O": {
		{Mass: 15.99491461956, Abundance: 0.99757},
		{Mass: 17.99916100, Abundance: 0.00205},
		{Mass: 16.99913170, Abundance: 0.00038},
	},
	"F": {
		{Mass: 18.99840322, Abundance: 1.0},
	},
	"Na": {
		{Mass: 22.98976928090, Abundance: 1.0},
	},
	"Mg": {
		{Mass: 23.98504170, Abundance: 0.7899},
		{Mass: 25.98259292, Abundance: 0.1101},
		{Mass: 24.98583692, Abundance: 0.1000},
	},
	"Si": {
		{Mass: 27.97692653250, Abundance: 0.92223},
		{Mass: 28.97649470, Abundance: 0.04685},
		{Mass: 29.97377017, Abundance: 0.03092},
	},
	"P": {
		{Mass: 30.97376163, Abundance: 1.0},
	},
	"S": {
		{Mass: 31.97207100, Abundance: 0.9499},
		{Mass: 33.96786690, Abundance: 0.0425},
		{Mass: 32.97145876, Abundance: 0.0075},
		{Mass: 35.96708076, Abundance: 0.0001},
	},
	"Cl": {
		{Mass: 34.96885268, Abundance: 0.7576},
		{Mass: 36.96590259, Abundance: 0.2424},
	},
	"K": {
		{Mass: 38.96370668, Abundance: 0.932581},
		{Mass: 40.96182576, Abundance: 0.067302},
		{Mass: 39.96399848, Abundance: 0.000117},
	},
	"Ca": {
		{Mass: 39.96259098, Abundance: 0.96941},
		{Mass: 43.95548179, Abundance: 0.02086},
		{Mass: 41.95861801, Abundance: 0.00647},
		{Mass: 47.95253400, Abundance: 0.00187},
		{Mass: 42.95876660, Abundance: 0.00135},
		{Mass: 45.95369260, Abundance: 0.00004},
	},
	"Fe": {
		{Mass: 55.93493750, Abundance: 0.91754},
		{Mass: 53.93961050, Abundance: 0.05845},
		{Mass: 56.93539400, Abundance: 0.02119},
		{Mass: 57.93327560, Abundance: 0.00282},
	},
	"Cu": {
		{Mass: 62.92959750, Abundance: 0.6915},
		{Mass: 64.92778950, Abundance: 0.3085},
	},
	"Br": {
		{Mass: 78.91833710, Abundance: 0.5069},
		{Mass: 80.91629060, Abundance: 0.4931},
	},
	"Pd": {
		{Mass: 105.90348600, Abundance: 0.2733},
		{Mass: 107.90389200, Abundance: 0.2646},
		{Mass: 104.90508500, Abundance: 0.2233},
		{Mass: 109.90515300, Abundance: 0.1172},
		{Mass: 103.90403600, Abundance: 0.1114},
		{Mass: 101.90560900, Abundance: 0.0102},
	},
	"I": {
		{Mass: 126.90447300, Abundance: 1.0},
	},
}

var defaultTable = func() *Table {
	t, err := NewTable(defaultVersion, defaultData)
	if err != nil {
		panic(err)
	}
	return t
}()

// Default returns the bundled natural-abundance table. The table is
// shared; callers must not rely on identity and should treat it as
// read-only, which every method guarantees.
func Default() *Table {
	return defaultTable
}
