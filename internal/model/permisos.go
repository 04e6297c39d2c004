package model

// Claves de permiso "modulo.accion" que el router exige por ruta. La lista
// alimenta el seed del rol administrador y la pantalla de edición de roles.
var PermisosDisponibles = []string{
	"dashboard.ver",

	"clientes.ver",
	"clientes.crear",
	"clientes.editar",
	"clientes.eliminar",

	"pedidos.ver",
	"pedidos.crear",
	"pedidos.editar",
	"pedidos.cancelar",
	"pedidos.recibir",
	"pedidos.entregar",

	"recepcion.procesar",

	"finanzas.ver",
	"finanzas.registrar",
	"finanzas.exportar",
	"finanzas.cuentas",

	"cierres.ver",
	"cierres.confirmar",
	"cierres.eliminar",

	"fidelizacion.ver",
	"fidelizacion.gestionar",
	"fidelizacion.canjear",

	"usuarios.gestionar",
	"auditoria.ver",
}
