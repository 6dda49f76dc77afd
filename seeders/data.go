package seeders

// Datos iniciales para un despliegue nuevo. Los seeders son idempotentes:
// cada inserción usa ON CONFLICT DO NOTHING o verifica existencia previa.

var departmentsData = []string{
	"Dirección General",
	"Sistemas",
	"Recursos Humanos",
	"Finanzas",
	"Jurídico",
	"Atención Ciudadana",
}

type insumoSeed struct {
	Nombre      string
	Cantidad    int64
	StockMinimo int64
	Unidad      string
	Ubicacion   string
}

var insumosData = []insumoSeed{
	{Nombre: "Tóner HP 85A", Cantidad: 10, StockMinimo: 3, Unidad: "pieza", Ubicacion: "Almacén A, estante 1"},
	{Nombre: "Cable de red Cat6 3m", Cantidad: 25, StockMinimo: 5, Unidad: "pieza", Ubicacion: "Almacén A, estante 2"},
	{Nombre: "Memoria RAM DDR4 8GB", Cantidad: 8, StockMinimo: 2, Unidad: "pieza", Ubicacion: "Almacén B, gaveta 1"},
	{Nombre: "Disco SSD 480GB", Cantidad: 6, StockMinimo: 2, Unidad: "pieza", Ubicacion: "Almacén B, gaveta 2"},
	{Nombre: "Teclado USB", Cantidad: 15, StockMinimo: 4, Unidad: "pieza", Ubicacion: "Almacén A, estante 3"},
	{Nombre: "Mouse USB", Cantidad: 15, StockMinimo: 4, Unidad: "pieza", Ubicacion: "Almacén A, estante 3"},
	{Nombre: "Aire comprimido", Cantidad: 12, StockMinimo: 3, Unidad: "lata", Ubicacion: "Almacén A, estante 4"},
	{Nombre: "Pasta térmica", Cantidad: 5, StockMinimo: 2, Unidad: "tubo", Ubicacion: "Almacén B, gaveta 1"},
}
