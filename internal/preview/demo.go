package preview

// demoFileName labels the built-in dataset in the UI.
const demoFileName = "sample-inventory.csv"

// demoCSV is the demonstration dataset shown before any file is uploaded.
// It deliberately exercises the dialect: semicolon delimiter, quoted cells
// with embedded delimiters, and one malformed row.
const demoCSV = `sku;name;warehouse;qty
TD-1001;"Hex bolt; M8";Oslo;240
TD-1002;Washer M8;Bergen;1200
TD-1003;"Flange, steel";Oslo;35
TD-1004;Gasket
TD-1005;Anchor rail;Trondheim;88
`
