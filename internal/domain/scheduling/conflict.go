package scheduling

// Overlaps decide si el intervalo candidato [start, end) pisa alguno de los
// intervalos ocupados. Intervalos semiabiertos: terminar exactamente cuando
// otro empieza (end == busy.Start) NO es conflicto, las reservas
// espalda-con-espalda están permitidas.
//
// Sin efectos secundarios; seguro para llamadas concurrentes.
func Overlaps(start, end TimeOfDay, busy []BusyInterval) bool {
	for _, b := range busy {
		if end <= b.Start || start >= b.End {
			continue
		}
		return true
	}
	return false
}
