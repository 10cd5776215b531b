package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"credimoto/domain"
	"credimoto/service"
)

var calcularOpts struct {
	request   domain.LoanRequest
	redondear bool
	formato   string
}

var calcularCmd = &cobra.Command{
	Use:   "calcular",
	Short: "Calcula la cuota y la tabla de amortización",
	Long: `Calcula la cuota mensual y la tabla de amortización de un financiamiento.

Ejemplo:
  credimoto calcular --monto 500000 --tasa 12 --plazo 12 --redondear --formato tabla`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := calcularOpts.request.Parameters()
		if err != nil {
			return err
		}
		result, err := service.Calculate(params)
		if err != nil {
			return err
		}
		if calcularOpts.redondear {
			result = service.RoundResult(result, service.DisplayDecimals)
		}
		return writeCalculation(cmd.OutOrStdout(), result, calcularOpts.formato)
	},
}

func init() {
	f := calcularCmd.Flags()
	f.Float64Var(&calcularOpts.request.Monto, "monto", 0, "precio del vehículo")
	f.Float64Var(&calcularOpts.request.Inicial, "inicial", 0, "pago inicial")
	f.Float64Var(&calcularOpts.request.Tasa, "tasa", 0, "tasa anual en porcentaje")
	f.Float64Var(&calcularOpts.request.Plazo, "plazo", 0, "plazo en meses")
	f.BoolVar(&calcularOpts.redondear, "redondear", false, "redondear montos a centavos")
	f.StringVar(&calcularOpts.formato, "formato", "json", "formato de salida: json o tabla")
	_ = calcularCmd.MarkFlagRequired("monto")
	_ = calcularCmd.MarkFlagRequired("plazo")
}

func writeCalculation(w io.Writer, result domain.LoanResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "tabla":
		return writeTable(w, result)
	default:
		return fmt.Errorf("formato desconocido %q", format)
	}
}

func writeTable(w io.Writer, result domain.LoanResult) error {
	r := result.Resumen
	fmt.Fprintf(w, "Monto vehículo:   %.2f\n", r.MontoVehiculo)
	fmt.Fprintf(w, "Inicial:          %.2f\n", r.Inicial)
	fmt.Fprintf(w, "Monto financiar:  %.2f\n", r.MontoFinanciar)
	fmt.Fprintf(w, "Plazo:            %d meses\n", r.PlazoMeses)
	fmt.Fprintf(w, "Tasa:             %.2f%% anual (%.4f%% mensual)\n", r.TasaAnual, r.TasaMensual)
	fmt.Fprintf(w, "Cuota mensual:    %.2f\n", result.CuotaMensual)
	fmt.Fprintf(w, "Total intereses:  %.2f\n", result.TotalIntereses)
	fmt.Fprintf(w, "Total a pagar:    %.2f\n\n", result.TotalPagar)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Mes\tCuota\tCapital\tInterés\tSaldo\t")
	for _, row := range result.TablaAmortizacion {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", row.Mes, row.Cuota, row.Capital, row.Interes, row.Saldo)
	}
	return tw.Flush()
}
